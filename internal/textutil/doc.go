// Package textutil provides small text helpers shared by the CLI renderers.
package textutil

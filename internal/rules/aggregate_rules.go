package rules

import (
	"mkvbatch/internal/scan"
	"mkvbatch/internal/trackconfig"
)

// DefaultFlagRule sets each global slot's default flag to the strict
// majority of the per-file flags at that index. Slots with a pending default
// edit keep their value.
type DefaultFlagRule struct{}

func (DefaultFlagRule) Name() string { return "default flag" }

func (DefaultFlagRule) Apply(file *scan.File, batch *trackconfig.Batch) error {
	if err := guard(file, batch); err != nil {
		return err
	}
	aggregate(batch, func(t *trackconfig.Track) (*bool, bool) { return &t.Default, t.ModifyDefault })
	return nil
}

// ForcedFlagRule sets each global slot's forced flag to the strict majority
// of the per-file flags at that index. Slots with a pending forced edit keep
// their value.
type ForcedFlagRule struct{}

func (ForcedFlagRule) Name() string { return "forced flag" }

func (ForcedFlagRule) Apply(file *scan.File, batch *trackconfig.Batch) error {
	if err := guard(file, batch); err != nil {
		return err
	}
	aggregate(batch, func(t *trackconfig.Track) (*bool, bool) { return &t.Forced, t.ModifyForced })
	return nil
}

// aggregate applies the majority of per-file flags to each global slot. flag
// returns the flag field of a slot and whether it carries a pending edit.
func aggregate(batch *trackconfig.Batch, flag func(*trackconfig.Track) (*bool, bool)) {
	configs := batch.FileConfigs()
	for _, kind := range trackconfig.Kinds {
		for _, global := range batch.TrackList(kind) {
			target, pending := flag(global)
			if pending {
				continue
			}
			values := make([]bool, 0, len(configs))
			for _, cfg := range configs {
				if slot := cfg.Track(kind, global.Index); slot != nil {
					value, _ := flag(slot)
					values = append(values, *value)
				}
			}
			*target = Majority(values)
		}
	}
}

// Majority reports whether strictly more than half of values are true. An
// exact tie and an empty input are false.
func Majority(values []bool) bool {
	trueCount := 0
	for _, v := range values {
		if v {
			trueCount++
		}
	}
	return trueCount*2 > len(values)
}

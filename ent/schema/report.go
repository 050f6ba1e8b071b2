package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Report is a finalized score report. One row per completed
// administration; answers are kept alongside so history can show them.
type Report struct {
	ent.Schema
}

func (Report) Mixin() []ent.Mixin {
	return []ent.Mixin{SequenceMixin{}}
}

func (Report) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Immutable().
			Comment("UUID of the administration"),
		field.String("instrument_id").
			NotEmpty().
			Immutable().
			Comment("Catalog ID, e.g. phq9"),
		field.Int("total").
			NonNegative().
			Immutable(),
		field.Int("max_score").
			Positive().
			Immutable(),
		field.String("severity").
			NotEmpty().
			Immutable().
			Comment("Machine-readable band name"),
		field.String("band_label").
			Immutable(),
		field.Bool("escalate").
			Default(false).
			Immutable(),
		field.JSON("reasons", []string{}).
			Immutable().
			Comment("Escalation reasons, high-risk item first"),
		field.JSON("responses", map[string]int{}).
			Immutable().
			Comment("Question ID to answer value"),
	}
}

func (Report) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("instrument_id", "sequence"),
	}
}

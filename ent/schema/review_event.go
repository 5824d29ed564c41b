package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ReviewEvent records one completed rating. Rows are append-only.
type ReviewEvent struct {
	ent.Schema
}

func (ReviewEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (ReviewEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("user_id").
			NotEmpty(),
		field.String("item_id").
			NotEmpty().
			Comment("Links to Item"),
		field.Int("rating").
			Range(1, 5),
		field.Int("mastery_before"),
		field.Int("mastery_after"),
	}
}

func (ReviewEvent) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("item", Item.Type).
			Ref("review_events").
			Field("item_id").
			Unique().
			Required(),
	}
}

func (ReviewEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id"),
	}
}

package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Progress is the spaced repetition state of one item for one user.
type Progress struct {
	ent.Schema
}

func (Progress) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "progress"},
	}
}

func (Progress) Fields() []ent.Field {
	return []ent.Field{
		field.String("user_id").
			NotEmpty(),
		field.String("item_id").
			NotEmpty().
			Comment("Links to Item"),
		field.Int("mastery_level").
			Range(0, 5),
		field.Int("review_count").
			NonNegative(),
		field.Time("last_reviewed_at"),
		field.Time("next_review_at").
			Optional().
			Nillable().
			Comment("Unset until the first rating"),
	}
}

func (Progress) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("item", Item.Type).
			Ref("progress").
			Field("item_id").
			Unique().
			Required(),
	}
}

func (Progress) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "item_id").
			Unique(),
	}
}

package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Path is an imported learning path owned by one user.
type Path struct {
	ent.Schema
}

func (Path) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			NotEmpty().
			Immutable().
			Comment("Document-supplied or generated path ID"),
		field.String("user_id").
			NotEmpty().
			Comment("Owner of the path"),
		field.String("topic").
			Comment("Title shown in listings"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

func (Path) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("items", Item.Type).
			Annotations(entsql.OnDelete(entsql.Cascade)),
	}
}

func (Path) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id"),
	}
}

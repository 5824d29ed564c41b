package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"

	"github.com/abhisek/pathrecall/internal/content"
)

// Item is a single reviewable unit of a path.
type Item struct {
	ent.Schema
}

func (Item) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			NotEmpty().
			Immutable(),
		field.String("path_id").
			NotEmpty().
			Immutable().
			Comment("Links to Path"),
		field.String("topic"),
		field.Enum("kind").
			Values(
				string(content.KindFlashcard),
				string(content.KindQuiz),
				string(content.KindFillBlank),
				string(content.KindOpenEnded),
			),
		field.JSON("prompt", content.Prompt{}).
			Comment("Question, answer and options as JSON"),
		field.Int("position").
			NonNegative().
			Comment("Presentation order within the path"),
	}
}

func (Item) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("path", Path.Type).
			Ref("items").
			Field("path_id").
			Unique().
			Required().
			Immutable(),
		edge.To("progress", Progress.Type).
			Annotations(entsql.OnDelete(entsql.Cascade)),
		edge.To("review_events", ReviewEvent.Type).
			Annotations(entsql.OnDelete(entsql.Cascade)),
	}
}

func (Item) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("path_id", "position"),
	}
}

package migrate

import (
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// ItemsColumns holds the columns for the "items" table.
	ItemsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "topic", Type: field.TypeString},
		{Name: "kind", Type: field.TypeEnum, Enums: []string{"flashcard", "quiz", "fill_blank", "open_ended"}},
		{Name: "prompt", Type: field.TypeJSON},
		{Name: "position", Type: field.TypeInt},
		{Name: "path_id", Type: field.TypeString},
	}
	// ItemsTable holds the schema information for the "items" table.
	ItemsTable = &schema.Table{
		Name:       "items",
		Columns:    ItemsColumns,
		PrimaryKey: []*schema.Column{ItemsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "items_paths_items",
				Columns:    []*schema.Column{ItemsColumns[5]},
				RefColumns: []*schema.Column{PathsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "item_path_id_position",
				Unique:  false,
				Columns: []*schema.Column{ItemsColumns[5], ItemsColumns[4]},
			},
		},
	}
	// PathsColumns holds the columns for the "paths" table.
	PathsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "topic", Type: field.TypeString},
		{Name: "created_at", Type: field.TypeTime},
	}
	// PathsTable holds the schema information for the "paths" table.
	PathsTable = &schema.Table{
		Name:       "paths",
		Columns:    PathsColumns,
		PrimaryKey: []*schema.Column{PathsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "path_user_id",
				Unique:  false,
				Columns: []*schema.Column{PathsColumns[1]},
			},
		},
	}
	// ProgressColumns holds the columns for the "progress" table.
	ProgressColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "mastery_level", Type: field.TypeInt},
		{Name: "review_count", Type: field.TypeInt},
		{Name: "last_reviewed_at", Type: field.TypeTime},
		{Name: "next_review_at", Type: field.TypeTime, Nullable: true},
		{Name: "item_id", Type: field.TypeString},
	}
	// ProgressTable holds the schema information for the "progress" table.
	ProgressTable = &schema.Table{
		Name:       "progress",
		Columns:    ProgressColumns,
		PrimaryKey: []*schema.Column{ProgressColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "progress_items_progress",
				Columns:    []*schema.Column{ProgressColumns[6]},
				RefColumns: []*schema.Column{ItemsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "progress_user_id_item_id",
				Unique:  true,
				Columns: []*schema.Column{ProgressColumns[1], ProgressColumns[6]},
			},
		},
	}
	// ReviewEventsColumns holds the columns for the "review_events" table.
	ReviewEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "user_id", Type: field.TypeString},
		{Name: "rating", Type: field.TypeInt},
		{Name: "mastery_before", Type: field.TypeInt},
		{Name: "mastery_after", Type: field.TypeInt},
		{Name: "item_id", Type: field.TypeString},
	}
	// ReviewEventsTable holds the schema information for the "review_events" table.
	ReviewEventsTable = &schema.Table{
		Name:       "review_events",
		Columns:    ReviewEventsColumns,
		PrimaryKey: []*schema.Column{ReviewEventsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "review_events_items_review_events",
				Columns:    []*schema.Column{ReviewEventsColumns[7]},
				RefColumns: []*schema.Column{ItemsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "reviewevent_sequence",
				Unique:  false,
				Columns: []*schema.Column{ReviewEventsColumns[1]},
			},
			{
				Name:    "reviewevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{ReviewEventsColumns[2]},
			},
			{
				Name:    "reviewevent_user_id",
				Unique:  false,
				Columns: []*schema.Column{ReviewEventsColumns[3]},
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		ItemsTable,
		PathsTable,
		ProgressTable,
		ReviewEventsTable,
	}
)

func init() {
	ItemsTable.ForeignKeys[0].RefTable = PathsTable
	ProgressTable.ForeignKeys[0].RefTable = ItemsTable
	ProgressTable.Annotation = &entsql.Annotation{
		Table: "progress",
	}
	ReviewEventsTable.ForeignKeys[0].RefTable = ItemsTable
}

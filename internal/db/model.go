// nolint
//
//lint:file-ignore U1000 ignore unused code, it's generated
package db

var Columns = struct {
	GooseDbVersion struct {
		ID, VersionID, IsApplied, Tstamp string
	}
	News struct {
		ID, Title, Content, ImageURL string
	}
}{
	GooseDbVersion: struct {
		ID, VersionID, IsApplied, Tstamp string
	}{
		ID:        "id",
		VersionID: "version_id",
		IsApplied: "is_applied",
		Tstamp:    "tstamp",
	},
	News: struct {
		ID, Title, Content, ImageURL string
	}{
		ID:       "id",
		Title:    "title",
		Content:  "content",
		ImageURL: "imageUrl",
	},
}

var Tables = struct {
	GooseDbVersion struct {
		Name, Alias string
	}
	News struct {
		Name, Alias string
	}
}{
	GooseDbVersion: struct {
		Name, Alias string
	}{
		Name:  "goose_db_version",
		Alias: "t",
	},
	News: struct {
		Name, Alias string
	}{
		Name:  "news",
		Alias: "t",
	},
}

type News struct {
	tableName struct{} `pg:"news,alias:t,discard_unknown_columns"`

	ID       int     `pg:"id,pk"`
	Title    string  `pg:"title,use_zero"`
	Content  string  `pg:"content,use_zero"`
	ImageURL *string `pg:"imageUrl"`
}

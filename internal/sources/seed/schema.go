package seed

// NoteEntry represents a single note in the seed YAML
type NoteEntry struct {
	Title    string `yaml:"title"`
	Category string `yaml:"category"`
	Tags     string `yaml:"tags"` // comma-separated, like the editor input
	Content  string `yaml:"content"`
	Favorite bool   `yaml:"favorite"`
}

// File is the root structure for a notes seed file
type File struct {
	Categories []string    `yaml:"categories"`
	Notes      []NoteEntry `yaml:"notes"`
}

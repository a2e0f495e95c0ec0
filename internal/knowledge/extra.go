package knowledge

// Story is a narrative document published alongside the knowledge base
type Story struct {
	Type        string   `json:"type" yaml:"type"`
	Title       string   `json:"title" yaml:"title"`
	Subtitle    string   `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Published   string   `json:"published" yaml:"published"`
	Series      string   `json:"series" yaml:"series"`
	Order       int      `json:"order" yaml:"order"`
	Characters  []string `json:"characters" yaml:"characters"`
	Themes      []string `json:"themes" yaml:"themes"`
	WordCount   int      `json:"word_count" yaml:"word_count"`
	Parts       int      `json:"parts" yaml:"parts"`
	Summary     string   `json:"summary" yaml:"summary"`
	ViktorIntro bool     `json:"viktor_intro" yaml:"viktor_intro"`
	Content     string   `json:"content" yaml:"-"`
	Slug        string   `json:"slug" yaml:"-"`
}

// BlogPost is a dated post published alongside the knowledge base
type BlogPost struct {
	Type      string   `json:"type" yaml:"type"`
	Title     string   `json:"title" yaml:"title"`
	Published string   `json:"published" yaml:"published"`
	Summary   string   `json:"summary" yaml:"summary"`
	Tags      []string `json:"tags" yaml:"tags"`
	Content   string   `json:"content" yaml:"-"`
	Slug      string   `json:"slug" yaml:"-"`
}

// Page is a static standalone page
type Page struct {
	Type     string `json:"type" yaml:"type"`
	Title    string `json:"title" yaml:"title"`
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Content  string `json:"content" yaml:"-"`
	Slug     string `json:"slug" yaml:"-"`
}

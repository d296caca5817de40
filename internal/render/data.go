package render

import "html/template"

// Template data. Field names are part of the template contract.

type breadcrumbsData struct {
	Parts []Breadcrumb
}

type symbolContentData struct {
	Docs     template.HTML
	Sections []sectionData
}

type sectionData struct {
	ID      string
	Title   string
	Entries []entryData
}

type entryData struct {
	ID         string
	Name       string
	Href       string
	Kind       string
	KindTitle  string
	Signature  string
	Summary    template.HTML
	Deprecated bool
}

type sidepanelData struct {
	Package  string
	RootHref string
	Sections []sidepanelSection
}

type sidepanelSection struct {
	Title string
	Items []sidepanelItem
}

type sidepanelItem struct {
	Name    string
	Href    string
	Current bool
}

type symbolGroupData struct {
	Name    string
	Symbols []symbolData
}

type symbolData struct {
	ID             string
	Name           string
	Kind           string
	KindTitle      string
	Signature      string
	Origin         string
	SourceHref     string
	Docs           template.HTML
	Deprecated     bool
	DeprecatedDocs template.HTML
	Tags           []tagData
	Members        []memberData
	Children       []entryData
}

type tagData struct {
	Kind  string
	Name  string
	Type  string
	Value template.HTML
}

type memberData struct {
	ID   string
	Text string
	Docs template.HTML
}

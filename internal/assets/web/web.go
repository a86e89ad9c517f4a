package webassets

import _ "embed"

// ResultsPage is the html/template source for the search and results page.
//
//go:embed results.html
var ResultsPage string

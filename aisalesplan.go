// Package aisalesplan provides a small web front-end for AI-assisted account
// research. A customer name is sent to an AI search API, the returned
// markdown is rendered as HTML tables, and the result can be exported as a
// Word document.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goldmark/, etree/).
package aisalesplan

// Package affil resolves raw affiliation strings into per-author
// country and institution assignments. Detection is substring
// membership against a fixed country vocabulary and a weighted
// institution-keyword table, preferring a wrong-but-plausible answer
// over no answer.
package affil

import (
	"regexp"
	"strings"
)

const unknown = "UNKNOWN"

// Assignment records one author's resolved affiliation in one
// document.
type Assignment struct {
	Doc         int    `json:"doc"`
	Country     string `json:"country"`
	Institution string `json:"institution"`
}

// Result carries the author-aligned per-document country and
// institution lists, plus the author-keyed assignment maps for all
// authors, corresponding authors, and first authors.
type Result struct {
	Countries    [][]string
	Institutions [][]string

	All           map[string][]Assignment
	Corresponding map[string][]Assignment
	First         map[string][]Assignment
}

// wosGroupRe matches one "[name; name] affiliation text" group in a
// WoS C1 field.
var wosGroupRe = regexp.MustCompile(`\[([^\]]*)\]([^\[]*)`)

// Resolve maps each document's affiliation string onto its author
// list. The source tag selects the segment-splitting rules: "wos"
// affiliations carry bracketed author groups; Scopus and PubMed
// affiliations are one semicolon-joined string aligned to authors by
// position, with the corresponding author matched by name first.
//
// Every output list is author-aligned; slots with no detected value
// are UNKNOWN and then forward-filled within the document.
func Resolve(source string, authors [][]string, affiliations, correspondence []string) *Result {
	res := &Result{
		Countries:     make([][]string, len(authors)),
		Institutions:  make([][]string, len(authors)),
		All:           make(map[string][]Assignment),
		Corresponding: make(map[string][]Assignment),
		First:         make(map[string][]Assignment),
	}

	for doc, docAuthors := range authors {
		aff := ""
		if doc < len(affiliations) {
			aff = affiliations[doc]
		}
		corr := ""
		if doc < len(correspondence) {
			corr = correspondence[doc]
		}

		var cs, is []string
		if source == "wos" && wosGroupRe.MatchString(aff) {
			cs, is = resolveWoS(docAuthors, aff)
		} else {
			cs, is = resolvePositional(docAuthors, aff, corr)
		}
		ReplaceUnknowns(cs)
		ReplaceUnknowns(is)
		res.Countries[doc] = cs
		res.Institutions[doc] = is

		corrIdx := correspondingAuthor(docAuthors, corr)
		for i, name := range docAuthors {
			key := strings.ToLower(name)
			a := Assignment{Doc: doc, Country: cs[i], Institution: is[i]}
			res.All[key] = append(res.All[key], a)
			if i == 0 {
				res.First[key] = append(res.First[key], a)
			}
			if i == corrIdx {
				res.Corresponding[key] = append(res.Corresponding[key], a)
			}
		}
	}
	return res
}

// resolvePositional aligns semicolon-delimited affiliation segments
// to authors by position. The corresponding author, when its name
// occurs in the correspondence field, is resolved from that field
// instead of its positional segment.
func resolvePositional(docAuthors []string, aff, corr string) (countries, institutions []string) {
	segments := splitSegments(aff)
	countries = make([]string, len(docAuthors))
	institutions = make([]string, len(docAuthors))
	corrIdx := correspondingAuthor(docAuthors, corr)

	for i := range docAuthors {
		seg := ""
		switch {
		case i == corrIdx && strings.TrimSpace(corr) != "" && corr != unknown:
			seg = corr
		case i < len(segments):
			seg = segments[i]
		case len(segments) == 1:
			// Single-affiliation papers: all authors share it.
			seg = segments[0]
		}
		countries[i], institutions[i] = detect(seg)
	}
	return countries, institutions
}

// resolveWoS assigns each bracketed author group's affiliation text
// to the authors named inside the brackets. Authors never named in
// any group stay UNKNOWN for the forward-fill pass.
func resolveWoS(docAuthors []string, aff string) (countries, institutions []string) {
	countries = make([]string, len(docAuthors))
	institutions = make([]string, len(docAuthors))
	for i := range docAuthors {
		countries[i] = unknown
		institutions[i] = unknown
	}

	for _, m := range wosGroupRe.FindAllStringSubmatch(aff, -1) {
		names, text := m[1], m[2]
		country, institution := detect(text)
		for _, name := range strings.Split(names, ";") {
			idx := matchAuthor(docAuthors, name)
			if idx < 0 {
				continue
			}
			countries[idx] = country
			institutions[idx] = institution
		}
	}
	return countries, institutions
}

func detect(segment string) (country, institution string) {
	segment = strings.TrimSpace(segment)
	if segment == "" || segment == unknown {
		return unknown, unknown
	}
	return DetectCountry(segment), DetectInstitution(segment)
}

// splitSegments splits a raw affiliation string on semicolons,
// dropping empty segments.
func splitSegments(aff string) []string {
	if strings.TrimSpace(aff) == "" || aff == unknown {
		return nil
	}
	var out []string
	for _, s := range strings.Split(aff, ";") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// correspondingAuthor returns the index of the author whose name
// appears in the correspondence field, or -1. Name-first matching is
// the carve-out from pure positional alignment.
func correspondingAuthor(docAuthors []string, corr string) int {
	corr = strings.ToLower(strings.TrimSpace(corr))
	if corr == "" || strings.EqualFold(corr, unknown) {
		return -1
	}
	for i, name := range docAuthors {
		n := strings.ToLower(strings.TrimSpace(name))
		if n != "" && strings.Contains(corr, n) {
			return i
		}
	}
	// Fall back on surname-only matching; correspondence fields often
	// reorder initials.
	for i, name := range docAuthors {
		if surname := surnameOf(name); surname != "" && strings.Contains(corr, surname) {
			return i
		}
	}
	return -1
}

// matchAuthor finds the author list index for one bracketed WoS name,
// by case-insensitive equality first, then surname containment.
func matchAuthor(docAuthors []string, name string) int {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return -1
	}
	for i, a := range docAuthors {
		if strings.ToLower(strings.TrimSpace(a)) == name {
			return i
		}
	}
	surname := surnameOf(name)
	if surname == "" {
		return -1
	}
	for i, a := range docAuthors {
		if strings.Contains(strings.ToLower(a), surname) {
			return i
		}
	}
	return -1
}

// surnameOf extracts the family-name token from "Last, F." or
// "Last F." style names; lowercased.
func surnameOf(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if i := strings.Index(name, ","); i > 0 {
		return strings.TrimSpace(name[:i])
	}
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// ReplaceUnknowns forward-fills UNKNOWN slots from the previous
// detected value in the same list. It never fills backward and never
// crosses document boundaries (callers pass one document's list at a
// time). This is a heuristic for multi-author single-institution
// papers, not a correctness guarantee.
func ReplaceUnknowns(values []string) {
	last := unknown
	for i, v := range values {
		if v == unknown {
			if last != unknown {
				values[i] = last
			}
			continue
		}
		last = v
	}
}

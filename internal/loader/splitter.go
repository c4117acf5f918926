package loader

import (
	"strings"
	"unicode/utf8"
)

// Separators ordered from "best" to "worst" for semantic meaning
var separators = []string{"\n\n", "\n", " ", ""}

// splitTextIntoChunks splits text into pieces of at most limit bytes, trying the
// coarsest separator first and recursing into pieces that are still too large.
// Consecutive chunks share up to overlap bytes.
func splitTextIntoChunks(text string, limit int, overlap int) []string {
	if limit <= 0 {
		return []string{text}
	}
	if overlap >= limit {
		overlap = 0
	}
	return recursiveSplit(text, separators, limit, overlap)
}

func recursiveSplit(text string, seps []string, limit int, overlap int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	sep := seps[len(seps)-1]
	rest := []string(nil)
	for i, s := range seps {
		if s == "" || strings.Contains(text, s) {
			sep = s
			rest = seps[i+1:]
			break
		}
	}

	var pieces []string
	if sep == "" {
		pieces = splitRunes(text, limit)
	} else {
		for _, part := range strings.Split(text, sep) {
			if len(part) > limit && len(rest) > 0 {
				pieces = append(pieces, recursiveSplit(part, rest, limit, overlap)...)
				continue
			}
			pieces = append(pieces, part)
		}
	}
	return merge(pieces, sep, limit, overlap)
}

// merge packs pieces back together up to limit, seeding every new chunk with
// the tail of the previous one.
func merge(pieces []string, sep string, limit int, overlap int) []string {
	var chunks []string
	var current []string
	currentLen := 0

	joinedLen := func(extra int) int {
		if len(current) == 0 {
			return extra
		}
		return currentLen + len(sep) + extra
	}

	for _, piece := range pieces {
		if piece == "" {
			continue
		}
		if len(current) > 0 && joinedLen(len(piece)) > limit {
			chunks = append(chunks, strings.Join(current, sep))

			// drop from the front until what is left fits the overlap and the next piece
			for len(current) > 0 && (currentLen > overlap || joinedLen(len(piece)) > limit) {
				currentLen -= len(current[0])
				if len(current) > 1 {
					currentLen -= len(sep)
				}
				current = current[1:]
			}
		}
		currentLen = joinedLen(len(piece))
		current = append(current, piece)
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, sep))
	}
	return chunks
}

func splitRunes(text string, limit int) []string {
	var out []string
	for len(text) > 0 {
		end := limit
		if end >= len(text) {
			out = append(out, text)
			break
		}
		for end > 0 && !utf8.RuneStart(text[end]) {
			end--
		}
		if end == 0 {
			_, size := utf8.DecodeRuneInString(text)
			end = size
		}
		out = append(out, text[:end])
		text = text[end:]
	}
	return out
}

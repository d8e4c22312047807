package extraction

import (
	"strings"
	"unicode/utf8"
)

// defaultChunkSize bounds how much note text goes to the model in one
// request, measured in runes.
const defaultChunkSize = 4000

// chunkContent splits note text into pieces of at most maxSize runes.
// Splits happen at paragraph boundaries when possible, falling back to
// sentence boundaries and finally to a hard rune split for pathological
// runs of unbroken text.
func chunkContent(content string, maxSize int) []string {
	if utf8.RuneCountInString(content) <= maxSize {
		return []string{content}
	}

	var chunks []string
	var current []string
	size := 0

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, strings.Join(current, "\n\n"))
			current = nil
			size = 0
		}
	}

	for _, para := range strings.Split(content, "\n\n") {
		n := utf8.RuneCountInString(para)
		switch {
		case size+n <= maxSize:
			current = append(current, para)
			size += n
		case n > maxSize:
			flush()
			chunks = append(chunks, splitOversizedParagraph(para, maxSize)...)
		default:
			flush()
			current = append(current, para)
			size = n
		}
	}
	flush()
	return chunks
}

// splitOversizedParagraph breaks a paragraph that alone exceeds maxSize
// at sentence boundaries, hard-splitting any single sentence still over
// the bound.
func splitOversizedParagraph(para string, maxSize int) []string {
	var chunks []string
	var current []string
	size := 0

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, strings.Join(current, ". "))
			current = nil
			size = 0
		}
	}

	for _, sent := range strings.Split(para, ". ") {
		n := utf8.RuneCountInString(sent)
		if n > maxSize {
			flush()
			runes := []rune(sent)
			for start := 0; start < len(runes); start += maxSize {
				end := min(start+maxSize, len(runes))
				chunks = append(chunks, string(runes[start:end]))
			}
			continue
		}
		if size+n > maxSize {
			flush()
		}
		current = append(current, sent)
		size += n
	}
	flush()
	return chunks
}

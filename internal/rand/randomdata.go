// Package rand generates random test fixtures: artifact payloads, identifiers and localized text.
package rand

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

var (
	onceSource sync.Once
	rgen       *rand.Rand
	randMutex  sync.Mutex
)

const letterBytes = "abcdefghijklmnopqrstuvwxyz0123456789"

// runes used to build text, including characters which must be escaped in JSON
var textRunes = []rune("abcdefghijklmnopqrstuvwxyz ABCDEFGHIJKLMNOPQRSTUVWXYZ 0123456789 .,;:!?-_ \"\\/\n\t éàüßçñ 日本語 한국어 ✓")

var languageTags = []string{
	"en-US", "en-GB", "fr-FR", "de-DE", "es-ES", "es-419", "it-IT", "ja-JP", "ko-KR", "pt-BR", "zh-CN", "zh-TW",
}

func seed() {
	rgen = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec
}

func intn(n int) int {
	onceSource.Do(seed)
	randMutex.Lock()
	defer randMutex.Unlock()
	return rgen.Intn(n)
}

// Bytes returns a random slice of bytes
func Bytes(n int) []byte {
	onceSource.Do(seed)
	buf := make([]byte, n)
	randMutex.Lock()
	_, _ = rgen.Read(buf)
	randMutex.Unlock()
	return buf
}

// LetterString returns a random string picked in the [0-9]|[a-z] range
func LetterString(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(letterBytes[intn(len(letterBytes))])
	}
	return b.String()
}

// Text returns a random text of n runes, mixing ascii, accented and CJK characters, quotes and control characters
func Text(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteRune(textRunes[intn(len(textRunes))])
	}
	return b.String()
}

// LanguageTags returns up to n distinct BCP-47 language tags, in random order
func LanguageTags(n int) []string {
	tags := make([]string, len(languageTags))
	copy(tags, languageTags)
	for i := len(tags) - 1; i > 0; i-- {
		j := intn(i + 1)
		tags[i], tags[j] = tags[j], tags[i]
	}
	if n > len(tags) {
		n = len(tags)
	}
	return tags[:n]
}

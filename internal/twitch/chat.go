package twitch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/vodscribe/vodscribe/internal/transcript"
)

// ChatMessage is one parsed chat line.
type ChatMessage struct {
	Time    string // stream-relative timestamp as rendered in the log
	Author  string
	Message string
}

// ParseChat extracts chat messages from a TwitchDownloaderCLI HTML export.
// Each message is a <pre class="comment-root"> block whose text begins with
// a bracketed timestamp, with author and message in dedicated spans.
func ParseChat(r io.Reader) ([]ChatMessage, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse chat html: %w", err)
	}

	var msgs []ChatMessage
	doc.Find("pre.comment-root").Each(func(_ int, sel *goquery.Selection) {
		text := sel.Text()
		ts, _, found := strings.Cut(text, "]")
		if !found {
			return
		}
		ts = strings.TrimPrefix(strings.TrimSpace(ts), "[")

		author := strings.TrimSpace(sel.Find("span.comment-author").Text())
		message := strings.Trim(sel.Find("span.comment-message").Text(), ": ")

		msgs = append(msgs, ChatMessage{Time: ts, Author: author, Message: message})
	})
	return msgs, nil
}

// WriteChatTSV writes chat messages as three tab-separated columns with a
// header row. Creation is exclusive like the transcript writer.
func WriteChatTSV(path string, msgs []ChatMessage) error {
	fh, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", transcript.ErrOutputExists, path)
		}
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer fh.Close()

	w := csv.NewWriter(fh)
	w.Comma = '\t'

	if err := w.Write([]string{"time", "author", "message"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, m := range msgs {
		if err := w.Write([]string{m.Time, m.Author, m.Message}); err != nil {
			return fmt.Errorf("write message: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return fh.Close()
}

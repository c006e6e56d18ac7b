package twitch

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vodscribe/vodscribe/internal/transcript"
)

const chatHTML = `<html><body>
<pre class="comment-root">[0:01:15] <span class="comment-author">viewer_one</span><span class="comment-message">: hello chat</span></pre>
<pre class="comment-root">[0:01:18] <span class="comment-author">mod_person</span><span class="comment-message">: welcome in</span></pre>
<pre class="comment-root">malformed line without timestamp</pre>
<pre class="comment-root">[0:02:00] <span class="comment-message">: system notice</span></pre>
</body></html>`

func TestParseChat(t *testing.T) {
	msgs, err := ParseChat(strings.NewReader(chatHTML))
	if err != nil {
		t.Fatalf("ParseChat returned error: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(msgs))
	}

	if msgs[0].Time != "0:01:15" {
		t.Errorf("Expected time 0:01:15, got %q", msgs[0].Time)
	}
	if msgs[0].Author != "viewer_one" {
		t.Errorf("Expected author viewer_one, got %q", msgs[0].Author)
	}
	if msgs[0].Message != "hello chat" {
		t.Errorf("Expected message %q, got %q", "hello chat", msgs[0].Message)
	}

	// message without an author span still parses
	if msgs[2].Author != "" || msgs[2].Message != "system notice" {
		t.Errorf("Expected authorless notice, got %+v", msgs[2])
	}
}

func TestParseChat_Empty(t *testing.T) {
	msgs, err := ParseChat(strings.NewReader("<html><body></body></html>"))
	if err != nil {
		t.Fatalf("ParseChat returned error: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("Expected no messages, got %d", len(msgs))
	}
}

func TestWriteChatTSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.tsv")
	msgs := []ChatMessage{
		{Time: "0:01:15", Author: "viewer_one", Message: "hello chat"},
	}

	if err := WriteChatTSV(path, msgs); err != nil {
		t.Fatalf("WriteChatTSV returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "time\tauthor\tmessage\n0:01:15\tviewer_one\thello chat\n"
	if string(data) != want {
		t.Errorf("Expected %q, got %q", want, string(data))
	}

	// second write against the same path refuses with the shared sentinel,
	// so callers can errors.Is this stage like the transcript stage
	if err := WriteChatTSV(path, msgs); !errors.Is(err, transcript.ErrOutputExists) {
		t.Errorf("Expected ErrOutputExists, got %v", err)
	}
}

func TestVODPaths(t *testing.T) {
	root := t.TempDir()
	v, err := NewVOD("123456789", root)
	if err != nil {
		t.Fatalf("NewVOD returned error: %v", err)
	}

	if v.URL() != "https://www.twitch.tv/videos/123456789" {
		t.Errorf("Unexpected URL %q", v.URL())
	}
	if got := v.TranscriptPath(); got != filepath.Join(root, "123456789", "123456789_transcript.tsv") {
		t.Errorf("Unexpected transcript path %q", got)
	}
	if _, err := os.Stat(v.Dir); err != nil {
		t.Errorf("Expected output dir created: %v", err)
	}
}

func TestNewVOD_EmptyID(t *testing.T) {
	if _, err := NewVOD("", t.TempDir()); err == nil {
		t.Error("Expected error for empty id")
	}
}

package nicodo

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ErrWrite reports a failure writing the XML document.
var ErrWrite = errors.New("xml write error")

// WriteError wraps the underlying I/O failure.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string { return fmt.Sprintf("write xml: %v", e.Err) }

func (e *WriteError) Unwrap() []error { return []error{ErrWrite, e.Err} }

// xmlWriter emits a single-space indented document and remembers the first error.
type xmlWriter struct {
	w   *bufio.Writer
	err error
}

func (x *xmlWriter) raw(s string) {
	if x.err != nil {
		return
	}
	_, x.err = x.w.WriteString(s)
}

func (x *xmlWriter) escaped(s string) {
	if x.err != nil {
		return
	}
	x.err = xml.EscapeText(x.w, []byte(s))
}

// open writes `<name a="v" ...` without closing the tag.
func (x *xmlWriter) open(indent, name string, attrs [][2]string) {
	x.raw(indent + "<" + name)
	for _, a := range attrs {
		x.raw(" " + a[0] + `="`)
		x.escaped(a[1])
		x.raw(`"`)
	}
}

// WriteXML writes chats as a niconico comment XML document. An empty sequence
// writes nothing at all. Chats with empty content are skipped but still consume
// their position, so `no` keeps the chat's index in the full sequence.
func WriteXML(w io.Writer, chats []Chat) error {
	if len(chats) == 0 {
		return nil
	}

	x := &xmlWriter{w: bufio.NewWriter(w)}
	x.raw(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	x.raw("<packet>\n")
	x.open(" ", "thread", [][2]string{
		{"last_res", strconv.Itoa(len(chats) - 1)},
		{"ticket", ""},
	})
	x.raw("/>\n")
	x.open(" ", "view_counter", [][2]string{{"video", "0"}})
	x.raw("/>\n")

	for i, c := range chats {
		if c.Content == "" {
			continue
		}
		attrs := [][2]string{
			{"date", strconv.FormatInt(c.Date, 10)},
			{"vpos", strconv.FormatInt(c.Vpos, 10)},
			{"no", strconv.Itoa(i + 1)},
		}
		if c.UserID != "" {
			attrs = append(attrs, [2]string{"user_id", c.UserID})
		}
		if c.Mail != "" {
			attrs = append(attrs, [2]string{"mail", c.Mail})
		}
		if c.ID != "" {
			attrs = append(attrs, [2]string{"id", c.ID})
		}
		x.open(" ", "chat", attrs)
		x.raw(">")
		x.escaped(c.Content)
		x.raw("</chat>\n")
	}
	x.raw("</packet>\n")

	if x.err == nil {
		x.err = x.w.Flush()
	}
	if x.err != nil {
		return &WriteError{Err: x.err}
	}
	return nil
}

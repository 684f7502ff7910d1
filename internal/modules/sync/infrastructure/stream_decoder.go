package infrastructure

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// readStream consumes a text/event-stream body, invoking emit once per
// complete event with the event name and the joined data payload. Comment
// lines and fields other than "event" and "data" (id, retry) are skipped.
// Returns the read error that ended the stream, io.EOF on orderly close.
func readStream(r io.Reader, emit func(name string, data []byte)) error {
	reader := bufio.NewReader(r)
	var name string
	var data bytes.Buffer

	dispatch := func() {
		if data.Len() == 0 && name == "" {
			return
		}
		emit(name, append([]byte(nil), data.Bytes()...))
		name = ""
		data.Reset()
	}

	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")

		switch {
		case err != nil:
			// A partial trailing line is not a complete event; drop it.
			return err
		case line == "":
			dispatch()
		case strings.HasPrefix(line, ":"):
			// comment / keep-alive
		default:
			field, value, _ := strings.Cut(line, ":")
			value = strings.TrimPrefix(value, " ")
			switch field {
			case "event":
				name = value
			case "data":
				if data.Len() > 0 {
					data.WriteByte('\n')
				}
				data.WriteString(value)
			}
		}
	}
}

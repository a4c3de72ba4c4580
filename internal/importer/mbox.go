package importer

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"email-rag/internal/models"
	"email-rag/internal/rag"
)

type MBoxImportOptions struct {
	Path string

	MaxMessageBytes int64 // safety cap per message
	LimitMessages   int   // 0 = no limit
	DryRun          bool
}

type MBoxImportResult struct {
	MessagesSeen   int
	EmailsIngested int
	Skipped        int
	Duration       time.Duration
}

func (o MBoxImportOptions) withDefaults() MBoxImportOptions {
	if o.MaxMessageBytes <= 0 {
		o.MaxMessageBytes = 50 * 1024 * 1024
	}
	return o
}

// ImportMBox bulk-ingests every message of an mbox file through the
// ingestion pipeline. Messages that fail validation are logged and skipped;
// any other ingest failure aborts the import.
func ImportMBox(ctx context.Context, ingestor *rag.Ingestor, opts MBoxImportOptions) (MBoxImportResult, error) {
	start := time.Now()
	opts = opts.withDefaults()
	var out MBoxImportResult

	if strings.TrimSpace(opts.Path) == "" {
		return out, fmt.Errorf("Path is required")
	}

	f, err := os.Open(opts.Path)
	if err != nil {
		return out, fmt.Errorf("failed to open mbox: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), int(opts.MaxMessageBytes))

	var raw bytes.Buffer
	flush := func() error {
		if raw.Len() == 0 {
			return nil
		}
		out.MessagesSeen++
		defer raw.Reset()

		if opts.LimitMessages > 0 && out.MessagesSeen > opts.LimitMessages {
			return nil
		}

		email, err := parseMessage(raw.Bytes())
		if err != nil {
			log.Warn().Err(err).Int("message", out.MessagesSeen).Msg("Skipping unparseable mbox message")
			out.Skipped++
			return nil
		}
		if opts.DryRun {
			out.EmailsIngested++
			return nil
		}

		if _, err := ingestor.Ingest(ctx, email); err != nil {
			var verr *rag.ValidationError
			if errors.As(err, &verr) {
				log.Warn().Err(err).Int("message", out.MessagesSeen).Msg("Skipping invalid mbox message")
				out.Skipped++
				return nil
			}
			return err
		}
		out.EmailsIngested++
		return nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "From ") {
			if err := flush(); err != nil {
				return out, err
			}
			continue
		}
		// mbox quoting: ">From" at line start escapes a body "From".
		if strings.HasPrefix(line, ">From") {
			line = line[1:]
		}
		raw.WriteString(line)
		raw.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return out, fmt.Errorf("failed to read mbox: %w", err)
	}
	if err := flush(); err != nil {
		return out, err
	}

	out.Duration = time.Since(start)
	return out, nil
}

func parseMessage(raw []byte) (*models.Email, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}

	dec := new(mime.WordDecoder)
	subject := msg.Header.Get("Subject")
	if decoded, err := dec.DecodeHeader(subject); err == nil {
		subject = decoded
	}

	from, err := msg.Header.AddressList("From")
	if err != nil || len(from) == 0 {
		return nil, fmt.Errorf("missing From header")
	}

	body, err := io.ReadAll(msg.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	return &models.Email{
		Subject:   subject,
		Sender:    from[0].Address,
		Recipient: addressList(msg.Header, "To"),
		CC:        addressList(msg.Header, "Cc"),
		BCC:       addressList(msg.Header, "Bcc"),
		Body:      strings.TrimSpace(string(body)),
	}, nil
}

func addressList(h mail.Header, key string) []string {
	addrs, err := h.AddressList(key)
	if err != nil {
		return nil
	}
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = a.Address
	}
	return out
}

package common

import "strings"

// replyPrefix maps a reply kind to the literal tag tokens that must lead the
// line, in order, before the key=value pairs start.
type replyPrefix []string

var (
	helloReplyTag   = replyPrefix{"HELLO", "REPLY"}
	sessionStatusTag = replyPrefix{"SESSION", "STATUS"}
	streamStatusTag  = replyPrefix{"STREAM", "STATUS"}
	namingReplyTag   = replyPrefix{"NAMING", "REPLY"}
	destReplyTag     = replyPrefix{"DEST", "REPLY"}
)

// parseReply tokenizes a single `\n`-terminated SAM reply line of the form
// `TAG SUBTAG KEY=VALUE KEY="quoted value" …\n` per spec §4.1: it matches the
// literal tag prefix, then a space-separated run of key=value pairs (value
// either double-quoted with no embedded quote/newline, or a bare run of
// non-space bytes), then the terminating newline. Any mismatch returns a
// ProtocolError.
func parseReply(line string, tag replyPrefix) (map[string]string, error) {
	if !strings.HasSuffix(line, "\n") {
		return nil, protocolErrorf("reply not newline-terminated: %q", line)
	}
	body := strings.TrimSuffix(line, "\n")

	tokens, err := tokenize(body)
	if err != nil {
		return nil, err
	}
	if len(tokens) < len(tag) {
		return nil, protocolErrorf("reply too short for tag %v: %q", []string(tag), line)
	}
	for i, want := range tag {
		if tokens[i] != want {
			return nil, protocolErrorf("unexpected tag %q, want %q in %q", tokens[i], want, line)
		}
	}

	fields := make(map[string]string, len(tokens)-len(tag))
	for _, tok := range tokens[len(tag):] {
		key, value, err := splitPair(tok)
		if err != nil {
			return nil, err
		}
		fields[key] = value
	}
	return fields, nil
}

// tokenize splits a reply body into space-separated tokens, honoring double
// quotes so a quoted value containing spaces stays one token.
func tokenize(body string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	inQuotes := false
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			cur.WriteByte(c)
		case c == ' ' && !inQuotes:
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	if inQuotes {
		return nil, protocolErrorf("unterminated quoted value in %q", body)
	}
	flush()
	return tokens, nil
}

// splitPair parses one KEY=VALUE token, where key matches [A-Za-z0-9]+ and
// value is either a double-quoted string or a bare unquoted run.
func splitPair(tok string) (key, value string, err error) {
	idx := strings.IndexByte(tok, '=')
	if idx <= 0 {
		return "", "", protocolErrorf("malformed key=value pair: %q", tok)
	}
	key = tok[:idx]
	for _, c := range key {
		if !isAlnum(c) {
			return "", "", protocolErrorf("malformed key %q in pair %q", key, tok)
		}
	}
	value = tok[idx+1:]
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		value = value[1 : len(value)-1]
	}
	return key, value, nil
}

func isAlnum(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func parseHelloReply(line string) (map[string]string, error)    { return parseReply(line, helloReplyTag) }
func parseSessionStatus(line string) (map[string]string, error) { return parseReply(line, sessionStatusTag) }
func parseStreamStatus(line string) (map[string]string, error)  { return parseReply(line, streamStatusTag) }
func parseNamingReply(line string) (map[string]string, error)   { return parseReply(line, namingReplyTag) }
func parseDestReply(line string) (map[string]string, error)     { return parseReply(line, destReplyTag) }

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"agentfs/internal/tools"
)

func TestHandleRequestMalformedJSON(t *testing.T) {
	registry := tools.NewRegistry()
	resp, failed := handleRequest(context.Background(), registry, []byte("{not json"))
	if !failed {
		t.Fatal("expected failure for malformed request")
	}
	errResp, ok := resp.(errorResponse)
	if !ok || !strings.Contains(errResp.Error, "malformed request") {
		t.Fatalf("expected malformed-request error, got %+v", resp)
	}
}

func TestHandleRequestUnknownTool(t *testing.T) {
	registry := tools.NewRegistry()
	resp, failed := handleRequest(context.Background(), registry, []byte(`{"id":1,"tool":"nope"}`))
	if !failed {
		t.Fatal("expected failure for unknown tool")
	}
	errResp := resp.(errorResponse)
	if !strings.Contains(errResp.Error, "not found") {
		t.Fatalf("expected not-found error, got %q", errResp.Error)
	}
}

func TestHandleRequestWriteThenRead(t *testing.T) {
	registry := tools.NewRegistry()
	path := filepath.Join(t.TempDir(), "file.txt")

	writeReq := `{"id":1,"tool":"write_whole_file","arguments":{"path":` + jsonString(path) + `,"content":"hello"}}`
	resp, failed := handleRequest(context.Background(), registry, []byte(writeReq))
	if failed {
		t.Fatalf("expected write success, got %+v", resp)
	}
	if resp.(successResponse).Result != "Success" {
		t.Fatalf("expected Success result, got %+v", resp)
	}

	readReq := `{"id":2,"tool":"read_file","arguments":{"path":` + jsonString(path) + `}}`
	resp, failed = handleRequest(context.Background(), registry, []byte(readReq))
	if failed {
		t.Fatalf("expected read success, got %+v", resp)
	}
	if resp.(successResponse).Result != "hello" {
		t.Fatalf("expected file content, got %+v", resp)
	}
}

func TestHandleRequestEmptyResultIsEncoded(t *testing.T) {
	registry := tools.NewRegistry()
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}

	req := `{"id":3,"tool":"read_file","arguments":{"path":` + jsonString(path) + `}}`
	resp, failed := handleRequest(context.Background(), registry, []byte(req))
	if failed {
		t.Fatalf("expected success, got %+v", resp)
	}

	encoded, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("failed to marshal response: %v", err)
	}
	if !strings.Contains(string(encoded), `"result":""`) {
		t.Fatalf("empty result must still appear in the response, got %s", encoded)
	}
}

func TestServeLoop(t *testing.T) {
	registry := tools.NewRegistry()
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "f.txt")

	input := strings.Join([]string{
		`{"id":1,"tool":"write_whole_file","arguments":{"path":` + jsonString(path) + `,"content":"data"}}`,
		``, // blank lines are skipped
		`{"id":2,"tool":"list_files","arguments":{"path":` + jsonString(tempDir) + `}}`,
	}, "\n") + "\n"

	var out bytes.Buffer
	if err := serve(zerolog.Nop(), registry, strings.NewReader(input), &out); err != nil {
		t.Fatalf("serve loop failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one response per request, got %d: %v", len(lines), lines)
	}

	var first struct {
		ID     int         `json:"id"`
		Result interface{} `json:"result"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if first.ID != 1 || first.Result != "Success" {
		t.Fatalf("unexpected first response: %s", lines[0])
	}

	var second struct {
		ID     int      `json:"id"`
		Result []string `json:"result"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if second.ID != 2 || len(second.Result) != 1 || second.Result[0] != "f.txt" {
		t.Fatalf("unexpected second response: %s", lines[1])
	}
}

func TestSplitInvocation(t *testing.T) {
	cases := []struct {
		line string
		name string
		args string
	}{
		{`read_file {"path": "/tmp/x"}`, "read_file", `{"path": "/tmp/x"}`},
		{`list_files{"path":"/tmp"}`, "list_files", `{"path":"/tmp"}`},
		{`create_directory`, "create_directory", ""},
	}
	for _, tc := range cases {
		name, args := splitInvocation(tc.line)
		if name != tc.name || args != tc.args {
			t.Fatalf("splitInvocation(%q) = %q, %q", tc.line, name, args)
		}
	}
}

func jsonString(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}

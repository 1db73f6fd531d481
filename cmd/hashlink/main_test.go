// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/bureau-foundation/hashlink/cmd/hashlink/cli"
	"github.com/bureau-foundation/hashlink/lib/config"
	"github.com/bureau-foundation/hashlink/lib/hashlink"
	"github.com/bureau-foundation/hashlink/lib/resolve"
)

const (
	exampleData = "Hello World!"
	exampleLink = "hl:zQmWvQxTqbG2Z9HPJgG57jjwR154cKhbtJenbyYTWkjgF3e:zuh8iaLobXC8g9tfma1CSTtYBakXeSTkHrYA5hmD4F7dCLw8XYwZ1GWyJ3zwF"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

// TestCommandTree checks that every command has a summary and that
// every leaf can run.
func TestCommandTree(t *testing.T) {
	root := rootCommand()
	walkCommands(root, nil, func(command *cli.Command, path []string) {
		if len(path) > 1 && command.Summary == "" {
			t.Errorf("%s: missing Summary", strings.Join(path, " "))
		}
		if len(command.Subcommands) == 0 && command.Run == nil {
			t.Errorf("%s: leaf command without Run", strings.Join(path, " "))
		}
		if command.Params != nil {
			// Panics on a malformed params struct.
			cli.FlagsFromParams(command.Name, command.Params())
		}
	})
}

// walkCommands recursively visits every command in the tree,
// calling visit for each node with the accumulated command path.
func walkCommands(command *cli.Command, path []string, visit func(*cli.Command, []string)) {
	current := append(append([]string(nil), path...), command.Name)
	visit(command, current)
	for _, sub := range command.Subcommands {
		walkCommands(sub, current, visit)
	}
}

func TestCreateLinkExample(t *testing.T) {
	params := metadataParams{
		URL:         []string{"http://example.org/hw.txt"},
		ContentType: "text/plain",
	}
	metadata, err := params.metadata()
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}

	result, err := createLink(strings.NewReader(exampleData), "stdin", hashlink.SHA256, hashlink.Base58BTC, metadata)
	if err != nil {
		t.Fatalf("createLink: %v", err)
	}
	if result.Link != exampleLink {
		t.Errorf("Link = %q, want %q", result.Link, exampleLink)
	}
	if result.Digest != "7f83b1657ff1fc53b92dc18148a1d65dfc2d4b1fa3d677284addd200126d9069" {
		t.Errorf("Digest = %s", result.Digest)
	}
	if result.Algorithm != "sha2-256" || result.Encoding != "base58btc" || result.Source != "stdin" {
		t.Errorf("result = %+v", result)
	}
	if result.Metadata == nil || result.Metadata.ContentType != "text/plain" {
		t.Errorf("Metadata = %+v", result.Metadata)
	}
}

func TestCreateLinkUnsupportedAlgorithm(t *testing.T) {
	_, err := createLink(strings.NewReader(exampleData), "stdin", hashlink.SHA512, hashlink.Base58BTC, hashlink.Metadata{})
	if !errors.Is(err, hashlink.ErrUnsupportedAlgorithm) {
		t.Fatalf("createLink error = %v, want ErrUnsupportedAlgorithm", err)
	}
}

func TestMetadataParams(t *testing.T) {
	params := metadataParams{
		Experimental: []string{
			"build=42",
			"negative=-3",
			"flag=true",
			"name=stable",
			`nested={"a":1,"b":[1,"x"]}`,
			"ratio=0.5",
			"huge=18446744073709551615",
			"equation=a=b",
		},
	}
	metadata, err := params.metadata()
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}

	want := hashlink.Experimental{
		"build":    int64(42),
		"negative": int64(-3),
		"flag":     true,
		"name":     "stable",
		"nested":   map[string]any{"a": int64(1), "b": []any{int64(1), "x"}},
		"ratio":    0.5,
		"huge":     uint64(18446744073709551615),
		"equation": "a=b",
	}
	if !reflect.DeepEqual(metadata.Experimental, want) {
		t.Errorf("Experimental = %#v, want %#v", metadata.Experimental, want)
	}

	for _, bad := range []string{"novalue", "=value"} {
		params := metadataParams{Experimental: []string{bad}}
		if _, err := params.metadata(); err == nil {
			t.Errorf("metadata(%q) succeeded", bad)
		}
	}
}

func TestLinkParamsResolve(t *testing.T) {
	cfg := config.Default()
	cfg.Link.Encoding = "base32"

	var params linkParams
	algorithm, encoding, err := params.resolve(cfg)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if algorithm != hashlink.SHA256 || encoding != hashlink.Base32 {
		t.Errorf("resolve = %v, %v, want sha2-256, base32", algorithm, encoding)
	}

	params.Encoding = "base64url"
	if _, encoding, _ = params.resolve(cfg); encoding != hashlink.Base64URL {
		t.Errorf("flag encoding = %v, want base64url", encoding)
	}

	params.Algorithm = "md4"
	if _, _, err := params.resolve(cfg); !errors.Is(err, hashlink.ErrUnsupportedAlgorithm) {
		t.Errorf("resolve error = %v, want ErrUnsupportedAlgorithm", err)
	}
}

func TestOpenInput(t *testing.T) {
	path := writeTempFile(t, t.TempDir(), "hw.txt", exampleData)

	for _, test := range []struct {
		path       string
		wantSource string
	}{
		{"", "stdin"},
		{"-", "stdin"},
		{path, path},
	} {
		input, source, err := openInput(test.path, strings.NewReader(exampleData))
		if err != nil {
			t.Fatalf("openInput(%q): %v", test.path, err)
		}
		data, err := io.ReadAll(input)
		input.Close()
		if err != nil {
			t.Fatalf("ReadAll: %v", err)
		}
		if string(data) != exampleData || source != test.wantSource {
			t.Errorf("openInput(%q) = %q from %q", test.path, data, source)
		}
	}

	if _, _, err := openInput(filepath.Join(t.TempDir(), "absent"), nil); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("openInput(absent) error = %v, want not exist", err)
	}
}

func TestVerifyLocal(t *testing.T) {
	tests := []struct {
		name string
		link string
		data string
		want bool
	}{
		{"match", exampleLink, exampleData, true},
		{"mismatch", exampleLink, "Hello World?", false},
		{"malformed", "hl:zK", exampleData, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&logs, nil))

			result := verifyLocal(test.link, strings.NewReader(test.data), "stdin", logger)
			if result.Verified != test.want {
				t.Errorf("Verified = %v, want %v", result.Verified, test.want)
			}
			if test.name == "malformed" && !strings.Contains(logs.String(), "hashlink did not parse") {
				t.Errorf("no parse warning logged: %s", logs.String())
			}
		})
	}
}

func TestVerifyRemote(t *testing.T) {
	root := t.TempDir()
	local := writeTempFile(t, root, "hw.txt", exampleData)

	link, err := hashlink.New(hashlink.SHA256, hashlink.Base58BTC, []byte(exampleData), hashlink.Metadata{
		URL: []string{"file://" + local},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cfg := config.Default()
	cfg.Resolve.Roots = []string{root}
	result, err := verifyRemote(context.Background(), link.String(), fileResolver(cfg, discardLogger()))
	if err != nil {
		t.Fatalf("verifyRemote: %v", err)
	}
	if !result.Verified || result.Source != "remote" {
		t.Errorf("result = %+v", result)
	}

	_, err = verifyRemote(context.Background(), link.String(), fileResolver(config.Default(), discardLogger()))
	if !errors.Is(err, hashlink.ErrRemoteUnsupported) {
		t.Errorf("verifyRemote without roots error = %v, want ErrRemoteUnsupported", err)
	}
}

func TestFileResolverFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Resolve.Roots = []string{"/srv/blobs"}
	cfg.Resolve.MaxSize = 99

	resolver, ok := fileResolver(cfg, discardLogger()).(*resolve.FileResolver)
	if !ok {
		t.Fatalf("fileResolver returned %T", resolver)
	}
	if resolver.MaxSize != 99 || len(resolver.Roots) != 1 || resolver.Roots[0] != "/srv/blobs" {
		t.Errorf("resolver = %+v", resolver)
	}
}

func TestInspectLink(t *testing.T) {
	result, err := inspectLink(exampleLink)
	if err != nil {
		t.Fatalf("inspectLink: %v", err)
	}
	if result.DigestSize != 32 || result.Encoding != "base58btc" {
		t.Errorf("result = %+v", result)
	}
	wantDiag := `{15: [32("http://example.org/hw.txt")], 14: "text/plain"}`
	if result.MetadataDiagnostic != wantDiag {
		t.Errorf("MetadataDiagnostic = %s, want %s", result.MetadataDiagnostic, wantDiag)
	}

	var output bytes.Buffer
	if err := writeInspection(&output, result); err != nil {
		t.Fatalf("writeInspection: %v", err)
	}
	for _, want := range []string{
		"algorithm:",
		"sha2-256",
		"url:",
		"http://example.org/hw.txt",
		"content-type:",
		"text/plain",
		wantDiag,
	} {
		if !strings.Contains(output.String(), want) {
			t.Errorf("inspection output missing %q:\n%s", want, output.String())
		}
	}
}

func TestInspectLinkWithoutMetadata(t *testing.T) {
	result, err := inspectLink("hl:zQmWvQxTqbG2Z9HPJgG57jjwR154cKhbtJenbyYTWkjgF3e")
	if err != nil {
		t.Fatalf("inspectLink: %v", err)
	}
	if result.Metadata != nil || result.MetadataDiagnostic != "" {
		t.Errorf("result = %+v, want no metadata", result)
	}

	var output bytes.Buffer
	if err := writeInspection(&output, result); err != nil {
		t.Fatalf("writeInspection: %v", err)
	}
	if !strings.Contains(output.String(), "(none)") {
		t.Errorf("output = %q, want (none) for metadata", output.String())
	}
}

func TestInspectLinkMalformed(t *testing.T) {
	_, err := inspectLink("hl:zK")
	var decodeError *hashlink.DecodeError
	if !errors.As(err, &decodeError) {
		t.Fatalf("inspectLink error = %v, want *DecodeError", err)
	}
}

func TestParseAttributes(t *testing.T) {
	revealed, err := parseAttributes([]string{"0_player_picture=hl:zQm:zuh", "empty="})
	if err != nil {
		t.Fatalf("parseAttributes: %v", err)
	}
	if revealed["0_player_picture"] != "hl:zQm:zuh" {
		t.Errorf("0_player_picture = %q", revealed["0_player_picture"])
	}
	if value, ok := revealed["empty"]; !ok || value != "" {
		t.Errorf("empty = %q, %v", value, ok)
	}

	if _, err := parseAttributes([]string{"missing-separator"}); err == nil {
		t.Error("parseAttributes accepted an entry without =")
	}
}

func TestReadRecordAndWriteResult(t *testing.T) {
	input := `{
		"supplements": [{"type": "hashlink-data", "ref": "pic", "attrs": [{"key": "field", "value": "0_picture"}]}],
		"~attach": [{"@id": "pic", "data": "SGVsbG8gV29ybGQh"}]
	}`
	record, err := readRecord(strings.NewReader(input), "record.json")
	if err != nil {
		t.Fatalf("readRecord: %v", err)
	}
	if len(record.Supplements) != 1 || string(record.Attachments[0].Data) != exampleData {
		t.Fatalf("record = %+v", record)
	}

	if _, err := readRecord(strings.NewReader("{"), "broken.json"); err == nil || !strings.Contains(err.Error(), "broken.json") {
		t.Errorf("readRecord(broken) error = %v", err)
	}
}

func TestExecuteVerify(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	dir := t.TempDir()
	good := writeTempFile(t, dir, "good.txt", exampleData)
	bad := writeTempFile(t, dir, "bad.txt", "tampered")

	if err := rootCommand().Execute(context.Background(), []string{"verify", exampleLink, good}); err != nil {
		t.Errorf("verify matching file: %v", err)
	}

	err := rootCommand().Execute(context.Background(), []string{"verify", exampleLink, bad})
	var exitError *cli.ExitError
	if !errors.As(err, &exitError) || exitError.Code != 1 {
		t.Errorf("verify mismatching file error = %v, want ExitError code 1", err)
	}

	if err := rootCommand().Execute(context.Background(), []string{"verify"}); err == nil {
		t.Error("verify without LINK succeeded")
	}
}

func TestExecuteSupplementVerify(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	record := map[string]any{
		"supplements": []map[string]any{{
			"type":  "hashlink-data",
			"ref":   "pic",
			"attrs": []map[string]string{{"key": "field", "value": "0_picture"}},
		}},
		"~attach": []map[string]any{{"@id": "pic", "data": []byte(exampleData)}},
	}
	encoded, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	path := writeTempFile(t, t.TempDir(), "record.json", string(encoded))

	args := []string{"supplement", "verify", "--attr", "0_picture=" + exampleLink, path}
	if err := rootCommand().Execute(context.Background(), args); err != nil {
		t.Errorf("supplement verify: %v", err)
	}

	args = []string{"supplement", "verify", "--attr", "0_picture=hl:zQmaD38CLH97P6WnuZFzJY7LnoSDSFqppAa5K7h7zBUSm6E", path}
	err = rootCommand().Execute(context.Background(), args)
	var exitError *cli.ExitError
	if !errors.As(err, &exitError) {
		t.Errorf("supplement verify with wrong link error = %v, want ExitError", err)
	}
}

func TestExecuteWithInvalidConfig(t *testing.T) {
	path := writeTempFile(t, t.TempDir(), "hashlink.yaml", "link:\n  encoding: identity\n")

	err := rootCommand().Execute(context.Background(), []string{"inspect", "--config", path, exampleLink})
	if err == nil || !strings.Contains(err.Error(), "link.encoding") {
		t.Errorf("inspect with invalid config error = %v, want link.encoding complaint", err)
	}
}

func TestExecuteMetadataEncodeWithoutFields(t *testing.T) {
	t.Setenv(config.EnvVar, "")

	err := rootCommand().Execute(context.Background(), []string{"metadata", "encode"})
	if err == nil || !strings.Contains(err.Error(), "no metadata given") {
		t.Errorf("metadata encode error = %v, want no metadata given", err)
	}
}

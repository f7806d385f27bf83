package fs_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"pharmtrace/internal/blob/core"
	"pharmtrace/internal/infra/blob/fs"
)

func TestPutGetRoundtrip(t *testing.T) {
	store, err := fs.New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	payload := "pharma report payload"
	info, err := store.Put(ctx, "reports/abc/recall_summary.json", strings.NewReader(payload), core.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"kind": "recall_summary"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != int64(len(payload)) || info.ETag == "" {
		t.Fatalf("unexpected info %+v", info)
	}

	got, rc, err := store.Get(ctx, "reports/abc/recall_summary.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = rc.Close() }()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != payload {
		t.Fatalf("unexpected payload %q", data)
	}
	if got.ContentType != "application/json" || got.Metadata["kind"] != "recall_summary" {
		t.Fatalf("metadata lost: %+v", got)
	}

	// Artifacts are immutable: a second put on the same key must fail.
	if _, err := store.Put(ctx, "reports/abc/recall_summary.json", strings.NewReader("other"), core.PutOptions{}); err == nil {
		t.Fatalf("expected duplicate put to fail")
	}
}

func TestKeySanitization(t *testing.T) {
	store, err := fs.New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	for _, key := range []string{"", "  ", "../escape", "/absolute", "a/../../b"} {
		if _, err := store.Put(ctx, key, strings.NewReader("x"), core.PutOptions{}); err == nil {
			t.Fatalf("expected rejection for key %q", key)
		}
	}
}

func TestListAndDelete(t *testing.T) {
	store, err := fs.New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	for _, key := range []string{"reports/a/one.json", "reports/a/two.csv", "reports/b/three.json"} {
		if _, err := store.Put(ctx, key, strings.NewReader("data"), core.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}

	infos, err := store.List(ctx, "reports/a/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 || infos[0].Key != "reports/a/one.json" {
		t.Fatalf("unexpected listing %+v", infos)
	}

	existed, err := store.Delete(ctx, "reports/a/one.json")
	if err != nil || !existed {
		t.Fatalf("delete: %v existed=%v", err, existed)
	}
	existed, err = store.Delete(ctx, "reports/a/one.json")
	if err != nil || existed {
		t.Fatalf("second delete must report missing, got %v existed=%v", err, existed)
	}
	if _, err := store.Head(ctx, "reports/a/one.json"); err == nil {
		t.Fatalf("expected head failure after delete")
	}
}

func TestPresignOnlySupportsGet(t *testing.T) {
	store, err := fs.New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	url, err := store.PresignURL(ctx, "reports/a/one.json", core.SignedURLOptions{})
	if err != nil || url == "" {
		t.Fatalf("presign get: %v %q", err, url)
	}
	if _, err := store.PresignURL(ctx, "reports/a/one.json", core.SignedURLOptions{Method: "PUT"}); err != core.ErrUnsupported {
		t.Fatalf("expected unsupported for PUT, got %v", err)
	}
	if store.Driver() != core.DriverFilesystem {
		t.Fatalf("unexpected driver %s", store.Driver())
	}
}

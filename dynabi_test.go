// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package dynabi_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	dynabi "github.com/pk910/dynamic-abi"
)

func TestTypeCache(t *testing.T) {
	da := dynabi.NewDynAbi(nil)
	cache := da.GetTypeCache()

	desc, err := cache.GetTypeDescriptor(reflect.TypeOf(testNode{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.AbiType != dynabi.AbiStructType || len(desc.Fields) != 2 {
		t.Fatalf("unexpected descriptor %v with %v fields", desc.AbiType, len(desc.Fields))
	}

	nextDesc := desc.Fields[1].Type
	if nextDesc.AbiType != dynabi.AbiOptionType || nextDesc.ElemDesc != desc {
		t.Fatalf("recursive option does not reference the struct descriptor")
	}

	again, err := cache.GetTypeDescriptor(reflect.TypeOf(testNode{}))
	if err != nil || again != desc {
		t.Fatalf("descriptor not cached")
	}

	types := cache.GetAllTypes()
	if len(types) != 3 {
		t.Fatalf("expected 3 cached types, got %v", types)
	}

	cache.RemoveType(reflect.TypeOf(testNode{}))
	if len(cache.GetAllTypes()) != 2 {
		t.Fatalf("type not removed")
	}
}

func TestTypeCacheFailedBuildIsNotCached(t *testing.T) {
	da := dynabi.NewDynAbi(nil)
	cache := da.GetTypeCache()

	type broken struct {
		A uint8
		B map[string]string
	}

	_, err := cache.GetTypeDescriptor(reflect.TypeOf(broken{}))
	if !errors.Is(err, dynabi.ErrUnsupportedType) {
		t.Fatalf("expected unsupported type, got %v", err)
	}
	if len(cache.GetAllTypes()) != 0 {
		t.Fatalf("partial descriptors leaked into the cache: %v", cache.GetAllTypes())
	}
}

func TestAbiTypeString(t *testing.T) {
	if dynabi.AbiUnionType.String() != "union" {
		t.Errorf("got %v", dynabi.AbiUnionType.String())
	}
	if dynabi.AbiType(200).String() != "AbiType(200)" {
		t.Errorf("got %v", dynabi.AbiType(200).String())
	}
}

func TestVerboseLogging(t *testing.T) {
	lines := []string{}
	da := dynabi.NewDynAbi(nil, dynabi.WithVerbose(), dynabi.WithLogCb(func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}))

	if _, err := da.Marshal(struct{ A uint16 }{1}); err != nil {
		t.Fatal(err)
	}

	found := false
	for _, line := range lines {
		if strings.Contains(line, "encode: uint16") {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing encode trace in %v", lines)
	}
}

func TestLoadSpecValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "specs.yaml")
	if err := os.WriteFile(path, []byte("MAX_NAME: 3\nMAX_ITEMS: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	specs, err := dynabi.LoadSpecValues(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	da := dynabi.NewDynAbi(specs)
	type limited struct {
		Name  string   `abi-max:"MAX_NAME"`
		Items []uint32 `abi-max:"MAX_ITEMS + 1"`
	}

	if _, err := da.Marshal(limited{Name: "abc", Items: []uint32{1, 2, 3}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := da.Marshal(limited{Name: "abcd"}); !errors.Is(err, dynabi.ErrMaxExceeded) {
		t.Fatalf("expected max exceeded, got %v", err)
	}

	if _, err := dynabi.ParseSpecValues([]byte("- not a map")); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := dynabi.LoadSpecValues(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestGlobalDynAbi(t *testing.T) {
	dynabi.SetGlobalSpecs(map[string]any{"MAX_ITEMS": uint64(1)})
	defer dynabi.SetGlobalSpecs(nil)

	da := dynabi.GetGlobalDynAbi()
	if da != dynabi.GetGlobalDynAbi() {
		t.Fatalf("global instance not reused")
	}

	payload := struct {
		Items []uint8 `abi-max:"MAX_ITEMS"`
	}{[]uint8{1, 2}}
	if _, err := da.Marshal(payload); !errors.Is(err, dynabi.ErrMaxExceeded) {
		t.Fatalf("expected max exceeded, got %v", err)
	}
}

func TestNewCompatibleUnion(t *testing.T) {
	u := dynabi.NewCompatibleUnion[testUnionVariants](1, "x")
	if u.Variant != 1 || u.Data != "x" {
		t.Fatalf("unexpected union %#v", u)
	}
	if u.GetDescriptorType() != reflect.TypeOf(testUnionVariants{}) {
		t.Fatalf("unexpected descriptor type %v", u.GetDescriptorType())
	}

	buf, err := dynabi.NewDynAbi(nil).Marshal(u)
	if err != nil || len(buf) != 3 {
		t.Fatalf("got %x %v", buf, err)
	}
}

// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package codegen

import (
	"fmt"
	"strings"
)

type encoderGenerator struct {
	typePrinter *TypePrinter
	codeBuf     strings.Builder
	varCounter  int
}

func (g *encoderGenerator) nextVar(prefix string) string {
	g.varCounter++
	return fmt.Sprintf("%s%d", prefix, g.varCounter)
}

// generateEncoder writes the EncodeABI method of a struct type.
func generateEncoder(info *typeInfo, typePrinter *TypePrinter, codeBuf *strings.Builder) {
	g := &encoderGenerator{typePrinter: typePrinter}
	typeName := typePrinter.TypeString(info.Type)

	for _, field := range info.Fields {
		expr := "t." + field.Name
		if field.VarUint {
			appendCode(&g.codeBuf, 1, "sink.WriteVarUint(uint64(%s))\n", expr)
			continue
		}
		g.encodeValue(field.Type, expr, 1)
	}

	appendCode(codeBuf, 0, "// EncodeABI appends the ABI encoding of t to sink.\n")
	appendCode(codeBuf, 0, "func (t *%s) EncodeABI(sink *abiutils.Sink) {\n", typeName)
	codeBuf.WriteString(g.codeBuf.String())
	appendCode(codeBuf, 0, "}\n\n")
}

func (g *encoderGenerator) encodeValue(info *typeInfo, expr string, indent int) {
	switch info.Kind {
	case kindBool:
		appendCode(&g.codeBuf, indent, "sink.WriteBool(bool(%s))\n", expr)
	case kindUint8:
		appendCode(&g.codeBuf, indent, "sink.WriteUint8(uint8(%s))\n", expr)
	case kindUint16:
		appendCode(&g.codeBuf, indent, "sink.WriteUint16(uint16(%s))\n", expr)
	case kindUint32:
		appendCode(&g.codeBuf, indent, "sink.WriteUint32(uint32(%s))\n", expr)
	case kindUint64:
		appendCode(&g.codeBuf, indent, "sink.WriteUint64(uint64(%s))\n", expr)
	case kindString:
		appendCode(&g.codeBuf, indent, "sink.WriteString(string(%s))\n", expr)
	case kindBytes:
		appendCode(&g.codeBuf, indent, "sink.WriteVarBytes(%s)\n", expr)
	case kindFixedBytes:
		appendCode(&g.codeBuf, indent, "sink.WriteBytes(%s[:])\n", expr)
	case kindArray:
		idx := g.nextVar("i")
		appendCode(&g.codeBuf, indent, "for %s := range %s {\n", idx, expr)
		g.encodeValue(info.Elem, fmt.Sprintf("%s[%s]", expr, idx), indent+1)
		appendCode(&g.codeBuf, indent, "}\n")
	case kindSlice:
		idx := g.nextVar("i")
		appendCode(&g.codeBuf, indent, "sink.WriteVarUint(uint64(len(%s)))\n", expr)
		appendCode(&g.codeBuf, indent, "for %s := range %s {\n", idx, expr)
		g.encodeValue(info.Elem, fmt.Sprintf("%s[%s]", expr, idx), indent+1)
		appendCode(&g.codeBuf, indent, "}\n")
	case kindOption:
		appendCode(&g.codeBuf, indent, "if %s == nil {\n", expr)
		appendCode(&g.codeBuf, indent+1, "sink.WriteBool(false)\n")
		appendCode(&g.codeBuf, indent, "} else {\n")
		appendCode(&g.codeBuf, indent+1, "sink.WriteBool(true)\n")
		g.encodeValue(info.Elem, fmt.Sprintf("(*%s)", expr), indent+1)
		appendCode(&g.codeBuf, indent, "}\n")
	case kindCodec:
		appendCode(&g.codeBuf, indent, "%s.EncodeABI(sink)\n", expr)
	}
}

// Copyright (c) 2026 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-abi library.

package codegen

import (
	"fmt"
	"strings"
)

type decoderGenerator struct {
	typePrinter *TypePrinter
	codeBuf     strings.Builder
	varCounter  int
}

func (g *decoderGenerator) nextVar(prefix string) string {
	g.varCounter++
	return fmt.Sprintf("%s%d", prefix, g.varCounter)
}

// varUintLimits holds the overflow check bound for varuint fields.
var varUintLimits = map[abiKind]string{
	kindUint8:  "0xff",
	kindUint16: "0xffff",
	kindUint32: "0xffffffff",
}

// generateDecoder writes the DecodeABI method of a struct type. The method
// decodes into a local copy and only assigns t when all fields decoded.
func generateDecoder(info *typeInfo, typePrinter *TypePrinter, codeBuf *strings.Builder) {
	g := &decoderGenerator{typePrinter: typePrinter}
	typeName := typePrinter.TypeString(info.Type)

	for _, field := range info.Fields {
		target := "out." + field.Name
		if field.VarUint {
			g.decodeVarUint(field.Type, target, 1)
			continue
		}
		g.decodeValue(field.Type, target, 1)
	}

	appendCode(codeBuf, 0, "// DecodeABI decodes t from src. t is only modified when decoding succeeds.\n")
	appendCode(codeBuf, 0, "func (t *%s) DecodeABI(src *abiutils.Source) error {\n", typeName)
	appendCode(codeBuf, 1, "var out %s\n", typeName)
	codeBuf.WriteString(g.codeBuf.String())
	appendCode(codeBuf, 1, "*t = out\n")
	appendCode(codeBuf, 1, "return nil\n")
	appendCode(codeBuf, 0, "}\n\n")
}

func (g *decoderGenerator) readInto(target string, typeName string, readFn string, indent int) {
	v := g.nextVar("v")
	appendCode(&g.codeBuf, indent, "{\n")
	appendCode(&g.codeBuf, indent+1, "%s, err := src.%s()\n", v, readFn)
	appendCode(&g.codeBuf, indent+1, "if err != nil {\n\treturn err\n}\n")
	appendCode(&g.codeBuf, indent+1, "%s = %s(%s)\n", target, typeName, v)
	appendCode(&g.codeBuf, indent, "}\n")
}

func (g *decoderGenerator) decodeVarUint(info *typeInfo, target string, indent int) {
	typeName := g.typePrinter.TypeString(info.Type)
	v := g.nextVar("v")
	appendCode(&g.codeBuf, indent, "{\n")
	appendCode(&g.codeBuf, indent+1, "%s, err := src.ReadVarUint()\n", v)
	appendCode(&g.codeBuf, indent+1, "if err != nil {\n\treturn err\n}\n")
	if limit, ok := varUintLimits[info.Kind]; ok {
		appendCode(&g.codeBuf, indent+1, "if %s > %s {\n\treturn abiutils.ErrIrregularData\n}\n", v, limit)
	}
	appendCode(&g.codeBuf, indent+1, "%s = %s(%s)\n", target, typeName, v)
	appendCode(&g.codeBuf, indent, "}\n")
}

// readFns maps the kinds decoded by a single Source call to that call.
var readFns = map[abiKind]string{
	kindBool:   "ReadBool",
	kindUint8:  "ReadByte",
	kindUint16: "ReadUint16",
	kindUint32: "ReadUint32",
	kindUint64: "ReadUint64",
	kindString: "ReadString",
	kindBytes:  "ReadBytesCopy",
}

func (g *decoderGenerator) decodeValue(info *typeInfo, target string, indent int) {
	if readFn, ok := readFns[info.Kind]; ok {
		g.readInto(target, g.typePrinter.TypeString(info.Type), readFn, indent)
		return
	}

	switch info.Kind {
	case kindFixedBytes:
		appendCode(&g.codeBuf, indent, "if err := src.ReadInto(%s[:]); err != nil {\n\treturn err\n}\n", target)
	case kindArray:
		idx := g.nextVar("i")
		appendCode(&g.codeBuf, indent, "for %s := range %s {\n", idx, target)
		g.decodeValue(info.Elem, fmt.Sprintf("%s[%s]", target, idx), indent+1)
		appendCode(&g.codeBuf, indent, "}\n")
	case kindSlice:
		count := g.nextVar("c")
		slice := g.nextVar("s")
		elem := g.nextVar("e")
		idx := g.nextVar("i")
		appendCode(&g.codeBuf, indent, "{\n")
		appendCode(&g.codeBuf, indent+1, "%s, err := src.ReadVarUint()\n", count)
		appendCode(&g.codeBuf, indent+1, "if err != nil {\n\treturn err\n}\n")
		appendCode(&g.codeBuf, indent+1, "%s := make(%s, 0, min(%s, uint64(src.Remaining())))\n", slice, g.typePrinter.TypeString(info.Type), count)
		appendCode(&g.codeBuf, indent+1, "for %s := uint64(0); %s < %s; %s++ {\n", idx, idx, count, idx)
		appendCode(&g.codeBuf, indent+2, "var %s %s\n", elem, g.typePrinter.TypeString(info.Elem.Type))
		g.decodeValue(info.Elem, elem, indent+2)
		appendCode(&g.codeBuf, indent+2, "%s = append(%s, %s)\n", slice, slice, elem)
		appendCode(&g.codeBuf, indent+1, "}\n")
		appendCode(&g.codeBuf, indent+1, "%s = %s\n", target, slice)
		appendCode(&g.codeBuf, indent, "}\n")
	case kindOption:
		present := g.nextVar("p")
		elem := g.nextVar("e")
		appendCode(&g.codeBuf, indent, "{\n")
		appendCode(&g.codeBuf, indent+1, "%s, err := src.ReadBool()\n", present)
		appendCode(&g.codeBuf, indent+1, "if err != nil {\n\treturn err\n}\n")
		appendCode(&g.codeBuf, indent+1, "if %s {\n", present)
		appendCode(&g.codeBuf, indent+2, "%s := new(%s)\n", elem, g.typePrinter.TypeString(info.Elem.Type))
		g.decodeValue(info.Elem, fmt.Sprintf("(*%s)", elem), indent+2)
		appendCode(&g.codeBuf, indent+2, "%s = %s\n", target, elem)
		appendCode(&g.codeBuf, indent+1, "}\n")
		appendCode(&g.codeBuf, indent, "}\n")
	case kindCodec:
		appendCode(&g.codeBuf, indent, "if err := %s.DecodeABI(src); err != nil {\n\treturn err\n}\n", target)
	}
}

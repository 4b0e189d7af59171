package ast

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// This file implements a small self-describing binary encoding for Graph so
// that github.com/dekarrin/rezi can round-trip a parsed AST to and from
// disk (see cmd/agdlrun's "validate --dump-ast" / "run --cached-ast"
// flags). The length-prefixed encoding style mirrors the hand-written
// binary codec the teacher used for its own AST type before handing
// persistence off to REZI at the storage layer.

func encInt(i int) []byte {
	buf := make([]byte, 0, 8)
	return binary.AppendVarint(buf, int64(i))
}

func decInt(data []byte) (int, int, error) {
	v, n := binary.Varint(data)
	if n <= 0 {
		return 0, 0, fmt.Errorf("ast: truncated int")
	}
	return int(v), n, nil
}

func encString(s string) []byte {
	raw := []byte(s)
	enc := encInt(len(raw))
	return append(enc, raw...)
}

func decString(data []byte) (string, int, error) {
	strLen, n, err := decInt(data)
	if err != nil {
		return "", 0, fmt.Errorf("ast: string length: %w", err)
	}
	total := n + strLen
	if len(data) < total {
		return "", 0, fmt.Errorf("ast: truncated string")
	}
	if !utf8.Valid(data[n:total]) {
		return "", 0, fmt.Errorf("ast: invalid utf8 in string")
	}
	return string(data[n:total]), total, nil
}

func encLink(l Link) []byte {
	enc := encString(l.Tag)
	enc = append(enc, byte(l.Kind))
	enc = append(enc, encInt(l.Line)...)
	enc = append(enc, encInt(l.Col)...)
	switch l.Kind {
	case ValueName:
		enc = append(enc, encString(l.Name)...)
	case ValueNumber:
		enc = append(enc, encInt(l.Num)...)
	case ValueFile:
		enc = append(enc, encString(l.File)...)
	}
	return enc
}

func decLink(data []byte) (Link, int, error) {
	var l Link
	tag, n, err := decString(data)
	if err != nil {
		return l, 0, fmt.Errorf("ast: link tag: %w", err)
	}
	l.Tag = tag
	total := n

	if len(data) < total+1 {
		return l, 0, fmt.Errorf("ast: truncated link kind")
	}
	l.Kind = ValueKind(data[total])
	total++

	line, n, err := decInt(data[total:])
	if err != nil {
		return l, 0, fmt.Errorf("ast: link line: %w", err)
	}
	l.Line = line
	total += n

	col, n, err := decInt(data[total:])
	if err != nil {
		return l, 0, fmt.Errorf("ast: link col: %w", err)
	}
	l.Col = col
	total += n

	switch l.Kind {
	case ValueName:
		name, n, err := decString(data[total:])
		if err != nil {
			return l, 0, fmt.Errorf("ast: link name: %w", err)
		}
		l.Name = name
		total += n
	case ValueNumber:
		num, n, err := decInt(data[total:])
		if err != nil {
			return l, 0, fmt.Errorf("ast: link num: %w", err)
		}
		l.Num = num
		total += n
	case ValueFile:
		file, n, err := decString(data[total:])
		if err != nil {
			return l, 0, fmt.Errorf("ast: link file: %w", err)
		}
		l.File = file
		total += n
	}

	return l, total, nil
}

func encIOCPtr(ioc *IOC) []byte {
	if ioc == nil {
		return []byte{0}
	}
	enc := []byte{1}
	enc = append(enc, encInt(len(ioc.Links))...)
	for _, l := range ioc.Links {
		enc = append(enc, encLink(l)...)
	}
	return enc
}

func decIOCPtr(data []byte) (*IOC, int, error) {
	if len(data) < 1 {
		return nil, 0, fmt.Errorf("ast: truncated IOC presence flag")
	}
	if data[0] == 0 {
		return nil, 1, nil
	}
	total := 1
	count, n, err := decInt(data[total:])
	if err != nil {
		return nil, 0, fmt.Errorf("ast: IOC link count: %w", err)
	}
	total += n

	links := make([]Link, 0, count)
	for i := 0; i < count; i++ {
		l, n, err := decLink(data[total:])
		if err != nil {
			return nil, 0, fmt.Errorf("ast: IOC link %d: %w", i, err)
		}
		links = append(links, l)
		total += n
	}
	return &IOC{Links: links}, total, nil
}

// MarshalBinary implements encoding.BinaryMarshaler for use with
// github.com/dekarrin/rezi's EncBinary.
func (g Graph) MarshalBinary() ([]byte, error) {
	enc := encInt(len(g.Transformers))
	for _, t := range g.Transformers {
		enc = append(enc, encString(t.ClassName)...)
		enc = append(enc, encIOCPtr(t.Content.Inputs)...)
		enc = append(enc, encIOCPtr(t.Content.Outputs)...)
		enc = append(enc, encIOCPtr(t.Content.Configs)...)
	}
	return enc, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler for use with
// github.com/dekarrin/rezi's DecBinary.
func (g *Graph) UnmarshalBinary(data []byte) error {
	count, n, err := decInt(data)
	if err != nil {
		return fmt.Errorf("ast: transformer count: %w", err)
	}
	total := n

	transformers := make([]Transformer, 0, count)
	for i := 0; i < count; i++ {
		className, n, err := decString(data[total:])
		if err != nil {
			return fmt.Errorf("ast: transformer %d class name: %w", i, err)
		}
		total += n

		inputs, n, err := decIOCPtr(data[total:])
		if err != nil {
			return fmt.Errorf("ast: transformer %d inputs: %w", i, err)
		}
		total += n

		outputs, n, err := decIOCPtr(data[total:])
		if err != nil {
			return fmt.Errorf("ast: transformer %d outputs: %w", i, err)
		}
		total += n

		configs, n, err := decIOCPtr(data[total:])
		if err != nil {
			return fmt.Errorf("ast: transformer %d configs: %w", i, err)
		}
		total += n

		transformers = append(transformers, Transformer{
			ClassName: className,
			Content:   TFMContent{Inputs: inputs, Outputs: outputs, Configs: configs},
		})
	}

	g.Transformers = transformers
	return nil
}

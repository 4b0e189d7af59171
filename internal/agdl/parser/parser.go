// Package parser implements the AGDL recursive-descent parser (C2). It
// consumes a token.Lexer and produces an ast.Graph, following the grammar
// and recursive structure of the original RDescentGraphParser
// (Graph/rdescent_graph_parser.py) line for line:
//
//	Graph       = Transformer { Transformer } ;
//	Transformer = Name "{" TFMContent "}" ;
//	TFMContent  = [ Inputs ] [ Outputs ] [ Configs ] ;
//	Inputs      = "inputs"  "{" IOLink    { IOLink    } "}" ;
//	Outputs     = "outputs" "{" IOLink    { IOLink    } "}" ;
//	Configs     = "configs" "{" ConfigLink{ ConfigLink} "}" ;
//	IOLink      = "<" Tag ">" Name ;
//	ConfigLink  = "<" Tag ">" ( Name | Number | File ) ;
package parser

import (
	"strconv"

	"github.com/soundgraph/agdl/internal/agdl/ast"
	"github.com/soundgraph/agdl/internal/agdl/token"
	"github.com/soundgraph/agdl/internal/agdlerrors"
)

// Parse lexes and parses src, returning the fully populated Graph AST. It
// returns a LexError or SyntaxError (see internal/agdlerrors) on the first
// grammar violation.
func Parse(src string) (ast.Graph, error) {
	lex, err := token.New(src)
	if err != nil {
		return ast.Graph{}, err
	}
	p := &parser{lex: lex}
	return p.graph()
}

type parser struct {
	lex *token.Lexer
}

// graph = Transformer { Transformer }
func (p *parser) graph() (ast.Graph, error) {
	g := ast.Graph{}

	first, err := p.transformer()
	if err != nil {
		return ast.Graph{}, err
	}
	g = g.Append(first)

	for !p.lex.InspectEOF() {
		next, err := p.transformer()
		if err != nil {
			return ast.Graph{}, err
		}
		g = g.Append(next)
	}

	return g, nil
}

// Transformer = Name "{" TFMContent "}"
func (p *parser) transformer() (ast.Transformer, error) {
	className, err := p.lex.ConsumeName()
	if err != nil {
		return ast.Transformer{}, err
	}

	if err := p.lex.Consume("{"); err != nil {
		return ast.Transformer{}, err
	}

	content, err := p.tfmContent()
	if err != nil {
		return ast.Transformer{}, err
	}

	if err := p.lex.Consume("}"); err != nil {
		return ast.Transformer{}, err
	}

	return ast.Transformer{ClassName: className, Content: content}, nil
}

// TFMContent = [ Inputs ] [ Outputs ] [ Configs ]
//
// The three blocks, when present, must appear in this fixed order: an
// "outputs" block written after "configs" (for example) is not matched at
// the point the grammar expects it, so it is left for the caller's "}"
// check, which rejects it as an unexpected token.
func (p *parser) tfmContent() (ast.TFMContent, error) {
	var content ast.TFMContent

	inputs, err := p.ioBlock("inputs", p.ioLink)
	if err != nil {
		return content, err
	}
	content.Inputs = inputs

	outputs, err := p.ioBlock("outputs", p.ioLink)
	if err != nil {
		return content, err
	}
	content.Outputs = outputs

	configs, err := p.ioBlock("configs", p.configLink)
	if err != nil {
		return content, err
	}
	content.Configs = configs

	return content, nil
}

// ioBlock parses `keyword "{" link { link } "}"`, returning nil if keyword
// is not present. Each block requires at least one link.
func (p *parser) ioBlock(keyword string, linkRule func() (ast.Link, error)) (*ast.IOC, error) {
	if !p.lex.Inspect(keyword) {
		return nil, nil
	}
	if err := p.lex.Consume(keyword); err != nil {
		return nil, err
	}
	if err := p.lex.Consume("{"); err != nil {
		return nil, err
	}

	first, err := linkRule()
	if err != nil {
		return nil, err
	}
	ioc := ast.IOC{}.Append(first)

	for !p.lex.Inspect("}") {
		link, err := linkRule()
		if err != nil {
			return nil, err
		}
		ioc = ioc.Append(link)
	}

	if err := p.lex.Consume("}"); err != nil {
		return nil, err
	}

	return &ioc, nil
}

// IOLink = "<" Tag ">" Name
func (p *parser) ioLink() (ast.Link, error) {
	tag, line, col, err := p.tagHeader()
	if err != nil {
		return ast.Link{}, err
	}

	name, err := p.lex.ConsumeName()
	if err != nil {
		return ast.Link{}, err
	}

	return ast.NewNameLink(tag, name, line, col), nil
}

// ConfigLink = "<" Tag ">" ( Name | Number | File )
func (p *parser) configLink() (ast.Link, error) {
	tag, line, col, err := p.tagHeader()
	if err != nil {
		return ast.Link{}, err
	}

	switch {
	case p.lex.InspectNumber():
		numText, err := p.lex.ConsumeNumber()
		if err != nil {
			return ast.Link{}, err
		}
		num, convErr := strconv.Atoi(numText)
		if convErr != nil {
			return ast.Link{}, agdlerrors.Syntax(line, col, "malformed number literal %q", numText)
		}
		return ast.NewNumberLink(tag, num, line, col), nil
	case p.lex.InspectName():
		name, err := p.lex.ConsumeName()
		if err != nil {
			return ast.Link{}, err
		}
		return ast.NewNameLink(tag, name, line, col), nil
	default:
		file, err := p.lex.ConsumeFile()
		if err != nil {
			return ast.Link{}, err
		}
		return ast.NewFileLink(tag, file, line, col), nil
	}
}

// tagHeader parses the common "<" Tag ">" prefix shared by IOLink and
// ConfigLink, returning the tag text and the position of the opening "<".
func (p *parser) tagHeader() (tag string, line, col int, err error) {
	line, col = p.lex.Current().Line, p.lex.Current().Col
	if err = p.lex.Consume("<"); err != nil {
		return "", 0, 0, err
	}
	tag, err = p.lex.ConsumeTag()
	if err != nil {
		return "", 0, 0, err
	}
	if err = p.lex.Consume(">"); err != nil {
		return "", 0, 0, err
	}
	return tag, line, col, nil
}

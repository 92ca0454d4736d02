package dex

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Pokedex is a json object keyed by entity name. Entities keep the order they
// were added in, a name that is added twice keeps its first position and its
// last value.
type Pokedex struct {
	Entities []Entity
}

func NewPokedex(entities ...Entity) Pokedex {
	p := Pokedex{}
	for _, e := range entities {
		p.Add(e)
	}
	return p
}

func (p *Pokedex) Add(entity Entity) {
	for i, existing := range p.Entities {
		if existing.Name == entity.Name {
			p.Entities[i] = entity
			return
		}
	}
	p.Entities = append(p.Entities, entity)
}

// Get returns the entity with the given name.
func (p Pokedex) Get(name string) (Entity, bool) {
	for _, e := range p.Entities {
		if e.Name == name {
			return e, true
		}
	}
	return Entity{}, false
}

func (p Pokedex) MarshalJSON() ([]byte, error) {
	var buff bytes.Buffer
	buff.WriteByte('{')
	for i, e := range p.Entities {
		if i > 0 {
			buff.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", e.Name, err)
		}
		buff.Write(key)
		buff.WriteByte(':')
		buff.Write(value)
	}
	buff.WriteByte('}')
	return buff.Bytes(), nil
}

func (p *Pokedex) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("pokedex: expected object, got %v", tok)
	}

	p.Entities = nil
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("pokedex: expected name, got %v", tok)
		}
		var entity Entity
		err = dec.Decode(&entity)
		if err != nil {
			return fmt.Errorf("pokedex: decode %s: %w", name, err)
		}
		entity.Name = name
		p.Add(entity)
	}

	_, err = dec.Token()
	return err
}

// Document is the persisted file, an array of pokedex objects. Scrapes always
// write exactly one.
type Document []Pokedex

// Encode writes `doc` as indented json.
func Encode(w io.Writer, doc Document) error {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}

func Decode(r io.Reader) (Document, error) {
	var doc Document
	err := json.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("decode pokedex document: %w", err)
	}
	return doc, nil
}

// WriteFile persists `entities` as a single element document.
func WriteFile(path string, entities []Entity) error {
	return WriteDocument(path, Document{NewPokedex(entities...)})
}

func WriteDocument(path string, doc Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	err = Encode(f, doc)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

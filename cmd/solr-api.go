package main

// structures modeling the legacy solr response shape.  the wire formats
// attach meaning to entry order, so these preserve insertion order instead
// of using go maps.

type namedListEntry struct {
	name  string
	value interface{}
}

// an ordered name/value list, equivalent to solr's NamedList
type namedList struct {
	entries []namedListEntry
}

func (nl *namedList) add(name string, value interface{}) {
	nl.entries = append(nl.entries, namedListEntry{name: name, value: value})
}

// first value for the given name, or nil; used by tests and the xml writer
func (nl *namedList) get(name string) interface{} {
	for _, entry := range nl.entries {
		if entry.name == name {
			return entry.value
		}
	}

	return nil
}

// an ordered field/value map.  adding a field that is already present
// converts its value to a multi-value list, matching SolrDocument semantics.
type solrDocument struct {
	entries []namedListEntry
}

func (d *solrDocument) addField(name string, value interface{}) {
	for i := range d.entries {
		if d.entries[i].name == name {
			switch existing := d.entries[i].value.(type) {
			case []interface{}:
				d.entries[i].value = append(existing, value)
			default:
				d.entries[i].value = []interface{}{existing, value}
			}
			return
		}
	}

	d.entries = append(d.entries, namedListEntry{name: name, value: value})
}

func (d *solrDocument) getField(name string) interface{} {
	for _, entry := range d.entries {
		if entry.name == name {
			return entry.value
		}
	}

	return nil
}

func (d *solrDocument) fieldNames() []string {
	var names []string

	for _, entry := range d.entries {
		names = append(names, entry.name)
	}

	return names
}

// the document list section of a select response
type solrDocumentList struct {
	numFound int
	start    int
	maxScore float32
	docs     []*solrDocument
}

package manifest

// Entry points at one manifest item by index, together with its
// path relative to the filtered subtree.
type Entry struct {
	Index int
	Rel   string
}

// View is a filtered projection of a Manifest. It holds indices,
// not copies, so items stay owned by the manifest.
type View struct {
	Manifest *Manifest
	Entries  []Entry
}

func (v View) Item(e Entry) *Item {
	return &v.Manifest.Items[e.Index]
}

func (v View) Len() int {
	return len(v.Entries)
}

func (v View) DirCount() int {
	n := 0
	for _, e := range v.Entries {
		if v.Item(e).IsDir {
			n++
		}
	}
	return n
}

func (v View) FileCount() int {
	n := 0
	for _, e := range v.Entries {
		if v.Item(e).IsFile {
			n++
		}
	}
	return n
}

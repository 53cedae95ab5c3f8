package pack

// Record is one archive entry. Name is slash separated, relative,
// and carries no trailing slash.
type Record struct {
	Name   string
	IsDir  bool
	IsFile bool
	Data   []byte
}

func DirRecord(name string) Record {
	return Record{Name: name, IsDir: true}
}

func FileRecord(name string, data []byte) Record {
	return Record{Name: name, IsFile: true, Data: data}
}

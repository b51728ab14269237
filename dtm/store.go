package dtm

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
	"path"
)

// matrixSnapshot is the gob wire form of a Matrix.
type matrixSnapshot struct {
	Vocab    []string
	DocCount int
	Rows     []map[int]int
}

type FileOps interface {
	MkdirAll(dirName string, perm os.FileMode) error
	CompressAndWriteGzipFile(fileName string, data interface{}, dirName string) error
}

type FileOpsImpl struct{}

func (f FileOpsImpl) MkdirAll(dirName string, perm os.FileMode) error {
	return os.MkdirAll(dirName, perm)
}

func (f FileOpsImpl) CompressAndWriteGzipFile(fileName string, data interface{}, dirName string) error {
	return CompressAndWriteGzipFile(fileName, data, dirName)
}

// FileOpsNoOp skips all disk writes, used to keep tests off the filesystem.
type FileOpsNoOp struct{}

func (f FileOpsNoOp) MkdirAll(dirName string, perm os.FileMode) error {
	return nil
}

func (f FileOpsNoOp) CompressAndWriteGzipFile(fileName string, data interface{}, dirName string) error {
	return nil
}

// This function is used to write and compress a datastructure to disk
func CompressAndWriteGzipFile(fileName string, data interface{}, dirName string) error {
	var compressedData bytes.Buffer
	gzipWriter := gzip.NewWriter(&compressedData)

	encoder := gob.NewEncoder(gzipWriter)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("error encoding matrix data: %v", err)
	}

	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("error closing gzip writer: %v", err)
	}

	if err := os.WriteFile(path.Join(dirName, fileName), compressedData.Bytes(), 0644); err != nil {
		return fmt.Errorf("error writing compressed data to disk: %v", err)
	}

	return nil
}

// SaveCompressed writes the matrix to dirName/fileName as a gzipped gob.
func (m *Matrix) SaveCompressed(fileName, dirName string, fileOps FileOps) error {
	if err := fileOps.MkdirAll(dirName, 0755); err != nil {
		return err
	}
	snapshot := matrixSnapshot{
		Vocab:    m.vocab,
		DocCount: m.docCount,
		Rows:     m.rows,
	}
	return fileOps.CompressAndWriteGzipFile(fileName, snapshot, dirName)
}

// LoadCompressed reads a matrix previously written with SaveCompressed and
// re-validates it, so a corrupted snapshot surfaces as ErrInvalidMatrix.
func LoadCompressed(filePath string) (*Matrix, error) {
	compressedData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	gzipReader, err := gzip.NewReader(bytes.NewReader(compressedData))
	if err != nil {
		return nil, err
	}
	defer gzipReader.Close()

	var snapshot matrixSnapshot
	decoder := gob.NewDecoder(gzipReader)
	if err := decoder.Decode(&snapshot); err != nil {
		return nil, err
	}

	entries := []Entry{}
	for doc, row := range snapshot.Rows {
		for term, count := range row {
			entries = append(entries, Entry{Doc: doc, Term: term, Count: count})
		}
	}
	return FromEntries(snapshot.Vocab, snapshot.DocCount, entries)
}

package util

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/textmill/corpusdiff/lexer"
)

func JSONToFile(j []byte, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if _, err := f.Write(j); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// MarshalToFile writes any value as JSON, optionally to a file.
func MarshalToFile(v interface{}, createFile bool, filename string) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if createFile {
		if err := JSONToFile(b, filename); err != nil {
			return "", err
		}
	}
	return string(b), nil
}

// ListCorpusDirectories returns the corpus directories under root, sorted.
func ListCorpusDirectories(root string) ([]string, error) {
	files, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	directories := []string{}
	for _, f := range files {
		if f.IsDir() {
			if f.Name() == ".git" {
				continue
			}
			directories = append(directories, f.Name())
		}
	}
	sort.Strings(directories)

	return directories, nil
}

// SelectCorpusDirectory prompts the user to pick one corpus directory.
func SelectCorpusDirectory(root, message string) (string, error) {
	directories, err := ListCorpusDirectories(root)
	if err != nil {
		return "", err
	}
	if len(directories) == 0 {
		return "", fmt.Errorf("no corpus directories under %s", root)
	}

	options := make([]string, len(directories))
	for i, d := range directories {
		options[i] = "○ " + d
	}

	prompt := &survey.Select{
		Message: message,
		Options: options,
	}

	var selected string
	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}

	return strings.Replace(selected, "○ ", "", -1), nil
}

// ReadCorpusDirectory loads every .txt and .html file in dir as one document
// each, extracting text content from html.
func ReadCorpusDirectory(dir string) ([]string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	docs := []string{}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		ext := filepath.Ext(f.Name())
		if ext != ".txt" && ext != ".html" {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, f.Name()))
		if err != nil {
			return nil, err
		}
		text := string(content)
		if ext == ".html" {
			text = lexer.ParseHtmlTextContent(text)
		}
		docs = append(docs, text)
	}
	return docs, nil
}

func CheckDirIsValid(dirName string) (bool, error) {
	_, err := os.Stat(dirName)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil // Directory does not exist
		}
		return false, err // Some other error occurred
	}
	return true, nil // Directory exists
}

const (
	TerminalReset  = "\033[0m"
	TerminalRed    = "\033[31m"
	TerminalGreen  = "\033[32m"
	TerminalYellow = "\033[33m"
	TerminalBlue   = "\033[34m"
	TerminalPurple = "\033[35m"
	TerminalCyan   = "\033[36m"
	TerminalWhite  = "\033[37m"
)

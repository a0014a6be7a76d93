package devserver

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/tgifai/chatwidget/internal/pkg/utils"
)

// FileMetadata is the JSON shape returned by the upload and metadata routes.
type FileMetadata struct {
	FileID      string `json:"fileId"`
	FileName    string `json:"fileName"`
	MimeType    string `json:"mimeType"`
	FileSize    int64  `json:"fileSize"`
	DownloadURL string `json:"downloadUrl"`
	UploadedAt  int64  `json:"uploadedAt"`
	Status      string `json:"status,omitempty"`
	ChatbotID   string `json:"chatbotId"`
	SessionID   string `json:"sessionId,omitempty"`
}

type storedFile struct {
	meta    FileMetadata
	content []byte
}

// Store keeps uploaded files in memory, partitioned by chatbot id.
type Store struct {
	publicURL string

	mu    sync.RWMutex
	files map[string]map[string]*storedFile
}

func NewStore(publicURL string) *Store {
	return &Store{
		publicURL: strings.TrimRight(publicURL, "/"),
		files:     make(map[string]map[string]*storedFile),
	}
}

// Put stores content and returns the metadata of the new file.
func (s *Store) Put(chatbotID, sessionID, name, mimeType string, content []byte) FileMetadata {
	now := time.Now()
	id := newFileID(chatbotID, sessionID, name, now)
	meta := FileMetadata{
		FileID:      id,
		FileName:    name,
		MimeType:    mimeType,
		FileSize:    int64(len(content)),
		DownloadURL: s.downloadURL(chatbotID, id),
		UploadedAt:  now.UnixMilli(),
		Status:      "stored",
		ChatbotID:   chatbotID,
		SessionID:   sessionID,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, ok := s.files[chatbotID]
	if !ok {
		bucket = make(map[string]*storedFile)
		s.files[chatbotID] = bucket
	}
	bucket[id] = &storedFile{meta: meta, content: content}
	return meta
}

func (s *Store) Get(chatbotID, fileID string) (FileMetadata, []byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[chatbotID][fileID]
	if !ok {
		return FileMetadata{}, nil, false
	}
	return f.meta, f.content, true
}

// List returns the chatbot's files, oldest first. It never returns nil.
func (s *Store) List(chatbotID string) []FileMetadata {
	s.mu.RLock()
	out := make([]FileMetadata, 0, len(s.files[chatbotID]))
	for _, f := range s.files[chatbotID] {
		out = append(out, f.meta)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].UploadedAt != out[j].UploadedAt {
			return out[i].UploadedAt < out[j].UploadedAt
		}
		return out[i].FileID < out[j].FileID
	})
	return out
}

// Delete reports whether a file was removed.
func (s *Store) Delete(chatbotID, fileID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, ok := s.files[chatbotID]
	if !ok {
		return false
	}
	if _, ok := bucket[fileID]; !ok {
		return false
	}
	delete(bucket, fileID)
	if len(bucket) == 0 {
		delete(s.files, chatbotID)
	}
	return true
}

func (s *Store) downloadURL(chatbotID, fileID string) string {
	return fmt.Sprintf("%s/api/attachments/download/%s?chatbotId=%s",
		s.publicURL, url.PathEscape(fileID), url.QueryEscape(chatbotID))
}

// newFileID builds file_<bot>_<session>_<name>_<millis><4 digits>.
func newFileID(chatbotID, sessionID, name string, now time.Time) string {
	return fmt.Sprintf("file_%s_%s_%s_%d%s",
		sanitize(chatbotID), sanitize(sessionID), sanitize(name), now.UnixMilli(), utils.RandDigits(4))
}

func sanitize(s string) string {
	if s == "" {
		return "anon"
	}
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-') {
			return r
		}
		return '_'
	}, s)
}

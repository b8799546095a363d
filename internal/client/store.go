package client

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studysphere/studysphere-go/internal/model"
)

// ChatMessage is one entry of the study assistant conversation.
type ChatMessage struct {
	ID     string    `json:"id"`
	Role   string    `json:"role"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sentAt"`
}

// Task is a to-do list item.
type Task struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// UIFlags holds panel visibility. Only these fields outlive the process.
type UIFlags struct {
	SidebarOpen          bool `json:"isSidebarOpen"`
	ToDoListVisible      bool `json:"isToDoListVisible"`
	PomodoroTimerVisible bool `json:"isPomodoroTimerVisible"`
}

// Store is the client-side application state. Mutations are synchronous;
// the document actions call the API first and commit only on success.
type Store struct {
	api   *Client
	flags *FlagsFile

	mu           sync.RWMutex
	documents    []model.Document
	chatMessages []ChatMessage
	tasks        []Task
	ui           UIFlags
}

// NewStore creates a store backed by api. If flags is non-nil the UI flags
// are restored from it and written back after every flag change.
func NewStore(api *Client, flags *FlagsFile) (*Store, error) {
	s := &Store{api: api, flags: flags}
	if flags != nil {
		ui, err := flags.Load()
		if err != nil {
			return nil, err
		}
		s.ui = ui
	}
	return s, nil
}

func (s *Store) Documents() []model.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.documents)
}

func (s *Store) SetDocuments(docs []model.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = slices.Clone(docs)
}

func (s *Store) AddDocument(doc model.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = append(s.documents, doc)
}

func (s *Store) RemoveDocument(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = slices.DeleteFunc(s.documents, func(d model.Document) bool { return d.ID == id })
}

func (s *Store) ChatMessages() []ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.chatMessages)
}

// AddChatMessage appends a message, filling in ID and SentAt when empty.
func (s *Store) AddChatMessage(msg ChatMessage) ChatMessage {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.SentAt.IsZero() {
		msg.SentAt = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chatMessages = append(s.chatMessages, msg)
	return msg
}

func (s *Store) ClearChatMessages() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chatMessages = nil
}

func (s *Store) Tasks() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

// AddTask appends a task, assigning an ID when empty.
func (s *Store) AddTask(task Task) Task {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
	return task
}

func (s *Store) RemoveTask(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = slices.DeleteFunc(s.tasks, func(t Task) bool { return t.ID == id })
}

// ToggleTaskDone flips the done state of a task. Unknown ids are ignored.
func (s *Store) ToggleTaskDone(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Done = !s.tasks[i].Done
			return
		}
	}
}

func (s *Store) Flags() UIFlags {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ui
}

// ToggleSidebar flips the sidebar visibility.
func (s *Store) ToggleSidebar() error {
	return s.updateFlags(func(f *UIFlags) { f.SidebarOpen = !f.SidebarOpen })
}

// SetSidebar shows or hides the sidebar.
func (s *Store) SetSidebar(open bool) error {
	return s.updateFlags(func(f *UIFlags) { f.SidebarOpen = open })
}

func (s *Store) ToggleToDoList() error {
	return s.updateFlags(func(f *UIFlags) { f.ToDoListVisible = !f.ToDoListVisible })
}

func (s *Store) TogglePomodoroTimer() error {
	return s.updateFlags(func(f *UIFlags) { f.PomodoroTimerVisible = !f.PomodoroTimerVisible })
}

// updateFlags applies fn and persists the result. The flags are left
// unchanged when the save fails.
func (s *Store) updateFlags(fn func(*UIFlags)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.ui
	fn(&next)
	if s.flags != nil {
		if err := s.flags.Save(next); err != nil {
			return err
		}
	}
	s.ui = next
	return nil
}

// FetchDocuments replaces the local documents with the server's list.
func (s *Store) FetchDocuments(ctx context.Context) error {
	docs, err := s.api.ListDocuments(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "fetching documents", "error", err)
		return err
	}
	s.SetDocuments(docs)
	return nil
}

// CreateDocument creates a document on the server and adds it locally.
func (s *Store) CreateDocument(ctx context.Context, req model.DocumentRequest) (model.Document, error) {
	doc, err := s.api.CreateDocument(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "creating document", "error", err)
		return model.Document{}, err
	}
	s.AddDocument(doc)
	return doc, nil
}

// DeleteDocumentByID deletes a document on the server and drops it locally.
func (s *Store) DeleteDocumentByID(ctx context.Context, id string) error {
	if err := s.api.DeleteDocument(ctx, id); err != nil {
		slog.ErrorContext(ctx, "deleting document", "id", id, "error", err)
		return err
	}
	s.RemoveDocument(id)
	return nil
}

package skylight

import (
	"context"
	"net/http"
	"net/url"
)

// Task is a task-box item. Unlike most resources, the task endpoints
// take the nested {data: {type, attributes}} envelope on writes; flat
// fields are silently ignored here, so the envelope is not optional.
type Task struct {
	ID         string
	Attributes TaskAttributes
}

type TaskAttributes struct {
	Title    string `json:"title"`
	Status   string `json:"status"`
	DueDate  string `json:"due_date,omitempty"`
	Notes    string `json:"notes,omitempty"`
	Assignee string `json:"assignee_name,omitempty"`
}

// taskEnvelope is the nested write body for task endpoints.
type taskEnvelope struct {
	Data taskEnvelopeData `json:"data"`
}

type taskEnvelopeData struct {
	Type       string         `json:"type"`
	ID         string         `json:"id,omitempty"`
	Attributes map[string]any `json:"attributes"`
}

type taskDocument struct {
	Data []struct {
		ID         string         `json:"id"`
		Attributes TaskAttributes `json:"attributes"`
	} `json:"data"`
}

type taskOne struct {
	Data struct {
		ID         string         `json:"id"`
		Attributes TaskAttributes `json:"attributes"`
	} `json:"data"`
}

// GetTasks returns all task-box items.
func (c *Client) GetTasks(ctx context.Context) ([]Task, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/frames/{frame}/tasks", nil, nil)
	if err != nil {
		return nil, err
	}

	var doc taskDocument
	if err := decode(data, &doc); err != nil {
		return nil, err
	}

	tasks := make([]Task, 0, len(doc.Data))
	for _, r := range doc.Data {
		tasks = append(tasks, Task{ID: r.ID, Attributes: r.Attributes})
	}
	return tasks, nil
}

// CreateTask adds a task-box item.
func (c *Client) CreateTask(ctx context.Context, title, dueDate, notes string) (*Task, error) {
	attrs := map[string]any{"title": title}
	if dueDate != "" {
		attrs["due_date"] = dueDate
	}
	if notes != "" {
		attrs["notes"] = notes
	}

	body := taskEnvelope{Data: taskEnvelopeData{Type: "tasks", Attributes: attrs}}
	data, err := c.do(ctx, http.MethodPost, "/api/frames/{frame}/tasks", nil, body)
	if err != nil {
		return nil, err
	}

	var doc taskOne
	if err := decode(data, &doc); err != nil {
		return nil, err
	}
	return &Task{ID: doc.Data.ID, Attributes: doc.Data.Attributes}, nil
}

// CompleteTask marks a task as done.
func (c *Client) CompleteTask(ctx context.Context, taskID string) (*Task, error) {
	body := taskEnvelope{Data: taskEnvelopeData{
		Type:       "tasks",
		ID:         taskID,
		Attributes: map[string]any{"status": "completed"},
	}}
	data, err := c.do(ctx, http.MethodPut, "/api/frames/{frame}/tasks/"+url.PathEscape(taskID), nil, body)
	if err != nil {
		return nil, err
	}

	var doc taskOne
	if err := decode(data, &doc); err != nil {
		return nil, err
	}
	return &Task{ID: doc.Data.ID, Attributes: doc.Data.Attributes}, nil
}

// DeleteTask removes a task-box item.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/frames/{frame}/tasks/"+url.PathEscape(taskID), nil, nil)
	return err
}

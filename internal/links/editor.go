package links

import (
	"errors"
	"fmt"

	"github.com/devlinks/internal/db"
	"github.com/devlinks/internal/validate"
)

var (
	// ErrEntryIndex 在条目下标越界时返回
	ErrEntryIndex = errors.New("link entry index out of range")
	// ErrEntryField 在编辑未知字段时返回
	ErrEntryField = errors.New("unknown link entry field")
	// ErrNotEditing 在当前状态不允许该操作时返回
	ErrNotEditing = errors.New("editor is not in editing state")
	// ErrSaveInFlight 在已有保存请求未完成时返回
	ErrSaveInFlight = errors.New("save already in flight")
	// ErrNothingToSave 在列表为空时拒绝保存
	ErrNothingToSave = errors.New("nothing to save")
	// ErrInvalidEntries 在存在未通过校验的条目时拒绝保存
	ErrInvalidEntries = errors.New("invalid link entries")
)

// State 表示编辑器所处的阶段。
type State int

const (
	StateEmpty State = iota
	StateEditing
	StateSaving
)

// RecordStore 是编辑器保存时依赖的最小存储接口。
type RecordStore interface {
	Get(identity string) (*db.UserRecord, error)
	UpdatePartial(identity string, fields map[string]any) (*db.UserRecord, error)
}

// Editor 持有一份可变的本地链接列表。
// 保存成功后用服务端返回的最新记录整体替换本地状态，
// 保存失败则保留本地编辑，不需要回滚。
type Editor struct {
	identity string
	store    RecordStore
	entries  []Entry
	state    State
}

// NewEditor 构造指定身份的编辑器，初始为空状态。
func NewEditor(identity string, store RecordStore) *Editor {
	return &Editor{identity: identity, store: store, state: StateEmpty}
}

// Load 用给定条目整体替换本地列表。
func (e *Editor) Load(entries []Entry) {
	e.entries = append([]Entry(nil), entries...)
	e.syncState()
}

// LoadRecord 从持久记录投影出本地列表。
func (e *Editor) LoadRecord(rec *db.UserRecord) {
	e.Load(EntriesFromRecord(rec))
}

// State 返回当前状态。
func (e *Editor) State() State { return e.state }

// Entries 返回本地列表的副本。
func (e *Editor) Entries() []Entry {
	return append([]Entry(nil), e.entries...)
}

// AddEntry 追加一条空白链接，任何状态下都允许，之后进入编辑状态。
func (e *Editor) AddEntry() {
	e.entries = append(e.entries, Entry{})
	e.state = StateEditing
}

// RemoveEntry 按位置移除一条链接，仅编辑状态下允许。
// 移除最后一条后回到空状态。
func (e *Editor) RemoveEntry(index int) error {
	if e.state != StateEditing {
		return ErrNotEditing
	}
	if index < 0 || index >= len(e.entries) {
		return fmt.Errorf("%w: %d", ErrEntryIndex, index)
	}

	e.entries = append(e.entries[:index], e.entries[index+1:]...)
	e.syncState()
	return nil
}

// EditEntry 原地修改一条链接的单个字段。
func (e *Editor) EditEntry(index int, field, value string) error {
	if e.state != StateEditing {
		return ErrNotEditing
	}
	if index < 0 || index >= len(e.entries) {
		return fmt.Errorf("%w: %d", ErrEntryIndex, index)
	}

	switch field {
	case "platform":
		e.entries[index].Platform = value
	case "url":
		e.entries[index].URL = value
	default:
		return fmt.Errorf("%w: %s", ErrEntryField, field)
	}
	return nil
}

// Validate 对当前列表运行链接规则，空映射表示可以保存。
func (e *Editor) Validate() validate.Errors {
	inputs := make([]validate.LinkInput, len(e.entries))
	for i, entry := range e.entries {
		inputs[i] = validate.LinkInput{Platform: entry.Platform, URL: entry.URL}
	}
	return validate.Check(validate.LinkList, inputs)
}

// CanSave 在列表非空、全部通过校验且没有进行中的保存时为真。
func (e *Editor) CanSave() bool {
	return e.state == StateEditing && e.Validate().Valid()
}

// Save 将列表压平成具名字段并做部分更新，
// 成功后重新拉取服务端记录替换本地状态。
func (e *Editor) Save() (*db.UserRecord, error) {
	if e.state == StateSaving {
		return nil, ErrSaveInFlight
	}
	if e.state == StateEmpty {
		return nil, ErrNothingToSave
	}
	if errs := e.Validate(); !errs.Valid() {
		return nil, fmt.Errorf("%w: %d field(s)", ErrInvalidEntries, len(errs))
	}

	e.state = StateSaving
	updated, err := e.store.UpdatePartial(e.identity, Flatten(e.entries))
	if err != nil {
		// 本地编辑从未被清空，失败后直接回到编辑状态即可
		e.state = StateEditing
		return nil, fmt.Errorf("save links: %w", err)
	}

	if fresh, err := e.store.Get(e.identity); err == nil {
		updated = fresh
	}
	e.Load(EntriesFromRecord(updated))
	return updated, nil
}

func (e *Editor) syncState() {
	if len(e.entries) == 0 {
		e.state = StateEmpty
	} else {
		e.state = StateEditing
	}
}

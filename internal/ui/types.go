package ui

import (
	"github.com/justyntemme/launchgrid/internal/drag"
	"github.com/justyntemme/launchgrid/internal/model"
)

type UIAction int

const (
	ActionNone UIAction = iota
	ActionLaunch
	ActionDrop
	ActionOpenFolder
	ActionCloseFolder
	ActionRenameFolder
	ActionFolderReorder
	ActionFolderRemove
	ActionHide
	ActionRescan
)

func (a UIAction) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionLaunch:
		return "launch"
	case ActionDrop:
		return "drop"
	case ActionOpenFolder:
		return "open-folder"
	case ActionCloseFolder:
		return "close-folder"
	case ActionRenameFolder:
		return "rename-folder"
	case ActionFolderReorder:
		return "folder-reorder"
	case ActionFolderRemove:
		return "folder-remove"
	case ActionHide:
		return "hide"
	case ActionRescan:
		return "rescan"
	}
	return "unknown"
}

// UIEvent is what one frame asks the application to do. Which fields are
// set depends on Action:
//
//	ActionLaunch:        Item
//	ActionDrop:          Session
//	ActionOpenFolder:    Item
//	ActionRenameFolder:  FolderID, Name
//	ActionFolderReorder: FolderID, Item, Index (within the folder)
//	ActionFolderRemove:  FolderID, Item, Index (main grid slot)
type UIEvent struct {
	Action   UIAction
	Item     model.Item
	FolderID string
	Name     string
	Index    int
	Session  drag.Session
}

// State is what the renderer draws. Items is the committed collection;
// the drag preview is derived from it while drawing.
type State struct {
	Items       []model.Item
	Folder      *model.Item // expanded folder, nil when closed
	ConfigError error
}

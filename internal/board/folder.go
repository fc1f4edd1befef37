package board

import (
	"fmt"
	"image"
	"slices"
	"strings"

	"github.com/justyntemme/launchgrid/internal/model"
)

// maxFolderIconMembers is how many member icons a folder icon shows.
const maxFolderIconMembers = 9

// Icons resolves application icons and composes folder icons. A nil Icons
// leaves icons unset.
type Icons interface {
	Resolve(path string) image.Image
	Compose(icons []image.Image) image.Image
}

// CreateFolder merges the app draggingID and the app targetID into a new
// folder placed where the target was. The folder holds exactly
// [dragging, target]. Both ids must name distinct apps in items, otherwise
// the result is ErrInvalidOperation and items is unchanged.
func CreateFolder(items []model.Item, draggingID, targetID string, icons Icons) ([]model.Item, model.Item, error) {
	if draggingID == targetID {
		return items, model.Item{}, fmt.Errorf("create folder: %s onto itself: %w", draggingID, model.ErrInvalidOperation)
	}
	src := model.IndexOf(items, draggingID)
	dst := model.IndexOf(items, targetID)
	if src < 0 || dst < 0 {
		return items, model.Item{}, fmt.Errorf("create folder: operand missing: %w", model.ErrInvalidOperation)
	}
	dragging, target := items[src], items[dst]
	if !dragging.IsApp() || !target.IsApp() {
		return items, model.Item{}, fmt.Errorf("create folder: %s onto %s: %w", dragging.Kind, target.Kind, model.ErrInvalidOperation)
	}

	folder := model.NewFolder(model.DefaultFolderName, dragging, target)
	folder.Icon = composeFolderIcon(folder.Apps, icons)

	out := make([]model.Item, 0, len(items)-1)
	for i := range items {
		if i != src && i != dst {
			out = append(out, items[i])
		}
	}
	out = slices.Insert(out, min(dst, len(out)), folder)
	return out, folder, nil
}

// RenameFolder renames the folder folderID, keeping its id, members and
// icon. A missing folder is ErrNotFound; a blank name is ErrInvalidOperation.
func RenameFolder(items []model.Item, folderID, name string) ([]model.Item, error) {
	i := folderIndex(items, folderID)
	if i < 0 {
		return items, fmt.Errorf("rename folder %s: %w", folderID, model.ErrNotFound)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return items, fmt.Errorf("rename folder %s: blank name: %w", folderID, model.ErrInvalidOperation)
	}
	out := slices.Clone(items)
	out[i].Name = name
	return out, nil
}

// ReorderInFolder moves the member appID of folderID to position target
// within the folder. Targets clamp to the member range.
func ReorderInFolder(items []model.Item, folderID, appID string, target int) ([]model.Item, bool, error) {
	fi := folderIndex(items, folderID)
	if fi < 0 {
		return items, false, fmt.Errorf("reorder in folder %s: %w", folderID, model.ErrNotFound)
	}
	apps := items[fi].Apps
	src := model.IndexOf(apps, appID)
	if src < 0 {
		return items, false, fmt.Errorf("reorder in folder %s: member %s: %w", folderID, appID, model.ErrNotFound)
	}
	target = max(0, min(target, len(apps)-1))
	if target == src {
		return items, false, nil
	}

	member := apps[src]
	members := slices.Delete(slices.Clone(apps), src, src+1)
	members = slices.Insert(members, target, member)

	out := slices.Clone(items)
	out[fi].Apps = members
	return out, true, nil
}

// RemoveFromFolder takes appID out of folderID and places it on the main
// grid at target (clamped to the collection). A folder left with a single
// member is replaced by that member; an emptied folder is removed.
func RemoveFromFolder(items []model.Item, folderID, appID string, target int, icons Icons) ([]model.Item, error) {
	fi := folderIndex(items, folderID)
	if fi < 0 {
		return items, fmt.Errorf("remove from folder %s: %w", folderID, model.ErrNotFound)
	}
	folder := items[fi].Clone()
	mi := model.IndexOf(folder.Apps, appID)
	if mi < 0 {
		return items, fmt.Errorf("remove from folder %s: member %s: %w", folderID, appID, model.ErrNotFound)
	}
	app := folder.Apps[mi]
	folder.Apps = slices.Delete(folder.Apps, mi, mi+1)

	out := slices.Clone(items)
	switch len(folder.Apps) {
	case 0:
		out = slices.Delete(out, fi, fi+1)
	case 1:
		out[fi] = folder.Apps[0]
	default:
		folder.Icon = composeFolderIcon(folder.Apps, icons)
		out[fi] = folder
	}

	target = max(0, min(target, len(out)))
	return slices.Insert(out, target, app), nil
}

// Decorate fills in missing icons: apps (including folder members) are
// resolved from their path and folders get a composed icon.
func Decorate(items []model.Item, icons Icons) []model.Item {
	if icons == nil {
		return items
	}
	out := model.CloneAll(items)
	for i := range out {
		switch out[i].Kind {
		case model.KindApp:
			if out[i].Icon == nil {
				out[i].Icon = icons.Resolve(out[i].Path)
			}
		case model.KindFolder:
			for j := range out[i].Apps {
				if out[i].Apps[j].Icon == nil {
					out[i].Apps[j].Icon = icons.Resolve(out[i].Apps[j].Path)
				}
			}
			if out[i].Icon == nil {
				out[i].Icon = composeFolderIcon(out[i].Apps, icons)
			}
		}
	}
	return out
}

func composeFolderIcon(apps []model.Item, icons Icons) image.Image {
	if icons == nil {
		return nil
	}
	n := min(len(apps), maxFolderIconMembers)
	imgs := make([]image.Image, 0, n)
	for _, app := range apps[:n] {
		img := app.Icon
		if img == nil {
			img = icons.Resolve(app.Path)
		}
		imgs = append(imgs, img)
	}
	return icons.Compose(imgs)
}

func folderIndex(items []model.Item, id string) int {
	for i := range items {
		if items[i].ID == id && items[i].IsFolder() {
			return i
		}
	}
	return -1
}

// Package nextcloud implements the bookmarksync.Storage interface against
// the Nextcloud Bookmarks app's REST API. Bookmarks there carry a numeric
// id, a title, a url, and a set of folder ids; folders form a tree. This
// package reconstructs the logical slash-separated path the rest of the
// engine works with by walking that tree.
package nextcloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/stefanboere/nc-bookmark-sync/pkg/bookmarksync/bmerrors"
	"github.com/stefanboere/nc-bookmark-sync/pkg/bookmarksync/core"
)

// rootFolderID is the id of the root of the folder tree. It is sent to the
// server as the parent of a top-level folder and as the folder of a bookmark
// whose path has no folder segments.
const rootFolderID = -1

// Storage is a Nextcloud Bookmarks-backed bookmarksync.Storage.
type Storage struct {
	// BaseURL is the API root, e.g. "https://cloud.example.com/index.php/apps/bookmarks/public/rest/v2".
	BaseURL  string
	Username string
	Password string
	// Client defaults to an http.Client with a 30-second per-request timeout
	// if nil.
	Client *http.Client
}

type folderNode struct {
	id       int
	title    string
	children []*folderNode
}

type ncFolder struct {
	ID           int        `json:"id,string"`
	Title        string     `json:"title"`
	ParentFolder int        `json:"parent_folder,string"`
	Children     []ncFolder `json:"children"`
}

type newNcFolder struct {
	Title        string `json:"title"`
	ParentFolder int    `json:"parent_folder"`
}

type ncBookmark struct {
	ID           int    `json:"id,string"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	Folders      []int  `json:"folders"`
	LastModified int64  `json:"lastmodified,string"`
}

type newNcBookmark struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Folders []int  `json:"folders"`
}

type changedNcBookmark struct {
	URL string `json:"url"`
}

type folderListResponse struct {
	Data []ncFolder `json:"data"`
}

type bookmarkListResponse struct {
	Data []ncBookmark `json:"data"`
}

type createdItem struct {
	Item struct {
		ID int `json:"id,string"`
	} `json:"item"`
}

func (s *Storage) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return &http.Client{Timeout: 30 * time.Second}
}

// call performs an authenticated API request and decodes the response body
// into response, if non-nil.
func (s *Storage) call(ctx context.Context, method, resource string, body, response any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &bmerrors.ParseError{Context: "encoding request body", Err: err}
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	request, err := http.NewRequestWithContext(ctx, method, s.BaseURL+resource, reader)
	if err != nil {
		return &bmerrors.TransportError{Context: "constructing request", Err: err}
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.SetBasicAuth(s.Username, s.Password)

	httpResponse, err := s.client().Do(request)
	if err != nil {
		return &bmerrors.TransportError{Context: method + " " + resource, Err: err}
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode < 200 || httpResponse.StatusCode >= 300 {
		return &bmerrors.TransportError{
			Context: method + " " + resource,
			Err:     fmt.Errorf("unexpected status: %s", httpResponse.Status),
		}
	}

	if response == nil {
		return nil
	}
	if err := json.NewDecoder(httpResponse.Body).Decode(response); err != nil {
		return &bmerrors.ParseError{Context: "decoding response from " + resource, Err: err}
	}
	return nil
}

func toNodes(folders []ncFolder) []*folderNode {
	nodes := make([]*folderNode, 0, len(folders))
	for _, f := range folders {
		nodes = append(nodes, &folderNode{id: f.ID, title: f.Title, children: toNodes(f.Children)})
	}
	return nodes
}

// folderPath performs the DFS lookup described by the engine: the ancestor
// folder titles of id, joined by '/'. It returns ok=false if id isn't found.
func folderPath(nodes []*folderNode, id int) (string, bool) {
	for _, node := range nodes {
		if node.id == id {
			return node.title, true
		}
		if end, ok := folderPath(node.children, id); ok {
			return node.title + "/" + end, true
		}
	}
	return "", false
}

// List fetches every bookmark and computes its path from the cached folder
// tree, which is (re)loaded fresh on each call.
func (s *Storage) List(ctx context.Context) ([]core.Bookmark, error) {
	var folders folderListResponse
	if err := s.call(ctx, http.MethodGet, "/folder", nil, &folders); err != nil {
		return nil, err
	}
	roots := toNodes(folders.Data)

	var bookmarks bookmarkListResponse
	if err := s.call(ctx, http.MethodGet, "/bookmark?limit=10000", nil, &bookmarks); err != nil {
		return nil, err
	}

	result := make([]core.Bookmark, 0, len(bookmarks.Data))
	for _, b := range bookmarks.Data {
		name := b.Title
		if len(b.Folders) > 0 {
			if path, ok := folderPath(roots, b.Folders[0]); ok {
				name = path + "/" + name
			}
		}
		result = append(result, core.Bookmark{
			ID:           uint64(b.ID),
			Path:         name,
			URL:          b.URL,
			LastModified: b.LastModified,
		})
	}
	return result, nil
}

// ensureFolder walks the cached tree for the longest existing prefix of
// segments, then creates the remaining suffix sequentially, attaching the
// newly created chain to the cache so later calls within the same Apply
// reuse it. It returns the id of the deepest folder in segments.
func (s *Storage) ensureFolder(ctx context.Context, parent *folderNode, segments []string) (int, error) {
	if len(segments) == 0 {
		return parent.id, nil
	}
	head := segments[0]
	for _, child := range parent.children {
		if child.title == head {
			return s.ensureFolder(ctx, child, segments[1:])
		}
	}
	return s.addSubfolders(ctx, parent, segments)
}

func (s *Storage) addSubfolders(ctx context.Context, parent *folderNode, segments []string) (int, error) {
	parentID := parent.id
	chain := make([]*folderNode, 0, len(segments))
	for _, title := range segments {
		id, err := s.createFolder(ctx, title, parentID)
		if err != nil {
			return 0, err
		}
		chain = append(chain, &folderNode{id: id, title: title})
		parentID = id
	}
	for i := 0; i < len(chain)-1; i++ {
		chain[i].children = append(chain[i].children, chain[i+1])
	}
	parent.children = append(parent.children, chain[0])
	return parentID, nil
}

func (s *Storage) createFolder(ctx context.Context, title string, parentID int) (int, error) {
	var created createdItem
	err := s.call(ctx, http.MethodPost, "/folder", newNcFolder{Title: title, ParentFolder: parentID}, &created)
	if err != nil {
		return 0, err
	}
	return created.Item.ID, nil
}

// Apply creates, updates, and deletes bookmarks on the remote side. It
// reloads the folder tree once at the start of the call and mutates the
// in-memory cache as folders are created so that multiple new bookmarks
// destined for the same new folder in this run share it.
func (s *Storage) Apply(ctx context.Context, changes core.Changes, newSnapshot []core.SnapshotBookmark) error {
	var folders folderListResponse
	if err := s.call(ctx, http.MethodGet, "/folder", nil, &folders); err != nil {
		return err
	}
	root := &folderNode{id: rootFolderID, title: "", children: toNodes(folders.Data)}

	paths := make([]string, 0, len(changes.New))
	for path := range changes.New {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		bookmark := changes.New[path]
		segments := strings.Split(path, "/")
		title := segments[len(segments)-1]
		folderID, err := s.ensureFolder(ctx, root, segments[:len(segments)-1])
		if err != nil {
			return err
		}
		var created createdItem
		body := newNcBookmark{Title: title, URL: bookmark.URL, Folders: []int{folderID}}
		if err := s.call(ctx, http.MethodPost, "/bookmark", body, &created); err != nil {
			return err
		}
	}

	for _, bookmark := range changes.Changed {
		resource := "/bookmark/" + strconv.FormatUint(bookmark.ID, 10)
		if err := s.call(ctx, http.MethodPut, resource, changedNcBookmark{URL: bookmark.URL}, nil); err != nil {
			return err
		}
	}

	for _, id := range changes.Deleted {
		resource := "/bookmark/" + strconv.FormatUint(id, 10)
		if err := s.call(ctx, http.MethodDelete, resource, nil, nil); err != nil {
			return err
		}
	}

	return nil
}

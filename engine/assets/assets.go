package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/shady/engine/assets/loaders"
	"github.com/spaghettifunk/shady/engine/containers"
	"github.com/spaghettifunk/shady/engine/core"
	"github.com/spaghettifunk/shady/engine/renderer/metadata"
)

// Capacity of the queue of changed files waiting for the main loop.
const changeQueueSize = 64

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

/**
 * @brief Loads shaders and images from disk and, when watching, notices
 * edits to them. The watcher goroutine only queues changed paths; the
 * main loop collects them with Changed and reloads on its own goroutine.
 */
type AssetManager struct {
	assets  map[string]AssetInfo
	loaders map[metadata.ResourceType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	wg       sync.WaitGroup
	fsnotify *fsnotify.Watcher
	isClosed bool
	changed  *containers.RingQueue[string]
}

func NewAssetManager() *AssetManager {
	am := &AssetManager{
		assets:  make(map[string]AssetInfo),
		loaders: make(map[metadata.ResourceType]Loader),
		done:    make(chan struct{}),
		changed: containers.NewRingQueue[string](changeQueueSize),
	}
	// Register loaders
	am.registerLoader(metadata.ResourceTypeShader, &loaders.ShaderLoader{})
	am.registerLoader(metadata.ResourceTypeImage, &loaders.ImageLoader{})
	return am
}

// Watch starts watching the given directories and everything below them.
func (am *AssetManager) Watch(dirs ...string) error {
	if am.isClosed {
		return errors.New("asset manager already closed")
	}
	if am.fsnotify == nil {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		am.fsnotify = w
		am.wg.Add(1)
		go am.start()
	}
	for _, dir := range dirs {
		if err := am.watchRecursive(dir); err != nil {
			return err
		}
	}
	return nil
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// Load an asset using the appropriate loader
func (am *AssetManager) LoadAsset(path string, resourceType metadata.ResourceType) (*metadata.Resource, error) {
	loader, ok := am.loaders[resourceType]
	if !ok {
		return nil, fmt.Errorf("no loader registered for asset type: %s", resourceType)
	}
	res, err := loader.Load(path, resourceType)
	if err != nil {
		return nil, err
	}

	path = filepath.Clean(path)
	am.mutex.Lock()
	am.assets[path] = AssetInfo{Path: path, Type: resourceType, LastLoaded: time.Now()}
	am.mutex.Unlock()
	return res, nil
}

// LoadImage decodes the image at path.
func (am *AssetManager) LoadImage(path string) (*loaders.Image, error) {
	res, err := am.LoadAsset(path, metadata.ResourceTypeImage)
	if err != nil {
		return nil, err
	}
	return res.Data.(*loaders.Image), nil
}

// LoadShaderSource reads a vertex/fragment pair for a program.
func (am *AssetManager) LoadShaderSource(program metadata.ProgramID, vertexPath, fragmentPath string) (*metadata.ShaderSource, error) {
	vert, err := am.LoadAsset(vertexPath, metadata.ResourceTypeShader)
	if err != nil {
		return nil, err
	}
	frag, err := am.LoadAsset(fragmentPath, metadata.ResourceTypeShader)
	if err != nil {
		return nil, err
	}
	return &metadata.ShaderSource{
		Program:      program,
		VertexPath:   filepath.Clean(vertexPath),
		FragmentPath: filepath.Clean(fragmentPath),
		Vertex:       vert.Data.(string),
		Fragment:     frag.Data.(string),
	}, nil
}

// Info reports what is known about a loaded asset.
func (am *AssetManager) Info(path string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[filepath.Clean(path)]
	return info, ok
}

// Changed returns the loaded files modified since the last call.
func (am *AssetManager) Changed() []string {
	paths := am.changed.Drain()
	if len(paths) < 2 {
		return paths
	}
	// editors tend to write a file more than once
	seen := make(map[string]struct{}, len(paths))
	out := paths[:0]
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

func (am *AssetManager) Shutdown() error {
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	close(am.done)
	am.wg.Wait()
	return nil
}

func (am *AssetManager) start() {
	defer am.wg.Done()
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name)
			}
		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())
		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

// watchRecursive adds dir and all directories under it to the watch list.
func (am *AssetManager) watchRecursive(dir string) error {
	return filepath.WalkDir(dir, func(walkPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return am.fsnotify.Add(walkPath)
		}
		return nil
	})
}

// Queue a loaded asset that was written to.
func (am *AssetManager) handleFileEvent(path string) {
	path = filepath.Clean(path)
	if determineAssetType(path) == metadata.ResourceTypeNone {
		return
	}
	am.mutex.RLock()
	_, loaded := am.assets[path]
	am.mutex.RUnlock()
	if !loaded {
		return
	}
	if err := am.changed.Enqueue(path); err != nil {
		core.LogDebug("dropping change of %s: %v", path, err)
	}
}

func determineAssetType(path string) metadata.ResourceType {
	switch filepath.Ext(path) {
	case ".vert", ".frag", ".vsh", ".fsh", ".glsl":
		return metadata.ResourceTypeShader
	case ".png":
		return metadata.ResourceTypeImage
	default:
		return metadata.ResourceTypeNone
	}
}

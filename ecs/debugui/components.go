package debugui

import (
	"github.com/plus3/stencil/ecs"
)

type ObjectBrowserWindow struct {
	cache             *ObjectBrowserCache
	selectedObjectId  ecs.ObjectID
	filterText        string
	filterTemplate    string
	maxObjectsPerPage int
	currentPage       int
}

type PropertyInspectorWindow struct {
	selectedObjectId ecs.ObjectID
}

type TemplateViewerWindow struct {
	cache            *TemplateViewerCache
	selectedTemplate string
	sortColumn       int
	sortAscending    bool
}

type PerformanceStatsWindow struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

type SystemViewerWindow struct {
	selectedSystems map[string]bool
}

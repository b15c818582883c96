// Package viz renders terminal views of sampling runs and map diagnostics.
//
//   - [Canvas]: Braille pixel canvas; [Plot] maps data coordinates onto it
//   - [OrbitPlot], [CobwebPlot]: attractor and staircase diagrams
//   - [SeriesPlot], [HistogramPlot]: asciigraph line charts
//   - [ProgressModel]: Bubble Tea view of a running sampler
//   - [RenderStats], [RenderTableSummary]: lipgloss summaries
//
// Views only read results; nothing here feeds back into a computation.
package viz

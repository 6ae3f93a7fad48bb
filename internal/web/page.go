package web

import (
	"html/template"

	"github.com/keywordmaster/keywordmaster/internal/session"
	"github.com/keywordmaster/keywordmaster/internal/stats"
	"github.com/keywordmaster/keywordmaster/internal/ui"
)

const pageName = "index"

type tagView struct {
	Index int
	Text  string
	Class string
}

type sliceView struct {
	Name  string
	Value int
	Class string
}

type pageData struct {
	AppName     string
	Tagline     string
	Description string
	TopicPrompt string
	SubmitLabel string
	Processing  string
	CopyLabel   string
	ExportLabel string
	TipsTitle   string
	Tips        []ui.Tip
	Footer      string
	Notice      string
	Version     string

	Session session.Snapshot
	Stats   stats.Stats
	Slices  []sliceView
	Tags    []tagView
	Average string
	Score   string
	Title   string
	Summary string
	Joined  string
}

func categoryClass(c stats.Category) string {
	switch c {
	case stats.Broad:
		return "broad"
	case stats.LongTail:
		return "longtail"
	default:
		return "standard"
	}
}

func (s *Server) newPageData(snap session.Snapshot, notice string) pageData {
	st := snap.Stats()

	data := pageData{
		AppName:     ui.AppName,
		Tagline:     ui.Tagline,
		Description: ui.Description,
		TopicPrompt: ui.TopicPrompt,
		SubmitLabel: ui.GenerateLabel,
		Processing:  ui.ProcessingLabel,
		CopyLabel:   ui.CopyLabel,
		ExportLabel: ui.ExportLabel,
		TipsTitle:   ui.TipsTitle,
		Tips:        ui.SEOTips,
		Footer:      ui.FooterText(s.now()),
		Notice:      notice,
		Version:     stateVersion(snap),
		Session:     snap,
		Stats:       st,
		Average:     st.FormatAverage(),
		Score:       stats.SEOScore,
		Title:       ui.ResultsTitle(snap.Topic),
		Summary:     ui.ResultsSubtitle(len(snap.Tags)),
		Joined:      snap.Joined(),
	}
	if snap.Generating {
		data.SubmitLabel = ui.ProcessingLabel
	}
	if snap.Copy == session.CopyCopied {
		data.CopyLabel = ui.CopiedLabel
	}

	for _, sl := range st.Slices() {
		data.Slices = append(data.Slices, sliceView{
			Name:  sl.Name,
			Value: sl.Value,
			Class: categoryClass(sl.Category),
		})
	}
	for i, tag := range snap.Tags {
		data.Tags = append(data.Tags, tagView{
			Index: i,
			Text:  tag,
			Class: categoryClass(stats.Categorize(tag)),
		})
	}
	return data
}

func parsePage() (*template.Template, error) {
	return template.New(pageName).Parse(pageTemplate)
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.AppName}}</title>
<style>
body { font-family: system-ui, sans-serif; margin: 0; background: #f8fafc; color: #0f172a; }
main { max-width: 960px; margin: 0 auto; padding: 2rem 1rem; }
header.hero { text-align: center; margin-bottom: 2rem; }
header.hero h1 { font-size: 2.5rem; margin: 0.5rem 0; }
form.topic { display: flex; gap: 0.5rem; }
form.topic input { flex: 1; padding: 0.75rem 1rem; font-size: 1rem; border: 1px solid #cbd5e1; border-radius: 0.75rem; }
button { padding: 0.6rem 1.2rem; border: 0; border-radius: 0.75rem; background: #dc2626; color: #fff; font-weight: 600; cursor: pointer; }
button:disabled { background: #94a3b8; cursor: default; }
button.secondary { background: #e2e8f0; color: #0f172a; }
.notice, .error { margin: 1rem 0; padding: 1rem; border-radius: 0.75rem; }
.notice { background: #fef9c3; }
.error { background: #fee2e2; color: #991b1b; }
.board { display: grid; grid-template-columns: 2fr 1fr; gap: 1rem; margin: 2rem 0; }
.panel { background: #fff; border: 1px solid #e2e8f0; border-radius: 1rem; padding: 1rem 1.5rem; }
progress { width: 100%; height: 0.75rem; }
progress.broad { accent-color: #ef4444; }
progress.standard { accent-color: #3b82f6; }
progress.longtail { accent-color: #10b981; }
.actions { display: flex; gap: 0.5rem; align-items: center; justify-content: space-between; }
.actions form { display: inline; }
.chips { display: flex; flex-wrap: wrap; gap: 0.5rem; margin-top: 1rem; }
.chip { display: inline-flex; align-items: center; gap: 0.25rem; padding: 0.3rem 0.4rem 0.3rem 0.8rem; border-radius: 999px; border: 1px solid; background: #fff; }
.chip.broad { border-color: #ef4444; }
.chip.standard { border-color: #3b82f6; }
.chip.longtail { border-color: #10b981; }
.chip form { display: inline; }
.chip button { background: none; color: #64748b; padding: 0 0.3rem; }
.tips { display: grid; grid-template-columns: repeat(3, 1fr); gap: 1rem; margin-top: 3rem; }
footer { text-align: center; color: #64748b; padding: 2rem 0; }
</style>
</head>
<body data-version="{{.Version}}">
<main>
<header class="hero">
  <p>{{.Tagline}}</p>
  <h1>{{.AppName}}</h1>
  <p>{{.Description}}</p>
</header>

<form id="generate-form" class="topic" method="post" action="/generate">
  <input type="text" name="topic" value="{{.Session.Topic}}" placeholder="{{.TopicPrompt}}" autocomplete="off"{{if .Session.Generating}} disabled{{end}}>
  <button id="generate-button" type="submit" data-processing="{{.Processing}}"{{if .Session.Generating}} disabled{{end}}>{{.SubmitLabel}}</button>
</form>

{{if .Notice}}<div class="notice">{{.Notice}}</div>{{end}}
{{if .Session.Error}}<div class="error" role="alert">{{.Session.Error}}</div>{{end}}

{{if .Tags}}
<section id="results">
  <div class="board">
    <div class="panel">
      <h3>Keyword Breakdown</h3>
      {{range .Slices}}
      <div>
        <span>{{.Name}}</span> <strong>{{.Value}}</strong>
        <progress class="{{.Class}}" value="{{.Value}}" max="{{$.Stats.Count}}"></progress>
      </div>
      {{end}}
    </div>
    <div class="panel">
      <h3>Quick Insights</h3>
      <p>Total Keywords <strong>{{.Stats.Count}}</strong></p>
      <p>Avg. Length <strong>{{.Average}}</strong></p>
      <p>SEO Score <strong>{{.Score}}</strong></p>
    </div>
  </div>

  <div class="panel">
    <div class="actions">
      <div>
        <h2>{{.Title}}</h2>
        <p>{{.Summary}}</p>
      </div>
      <div>
        <form id="copy-form" method="post" action="/copy" data-tags="{{.Joined}}">
          <button type="submit">{{.CopyLabel}}</button>
        </form>
        <a href="/export.csv"><button type="button" class="secondary">{{.ExportLabel}}</button></a>
      </div>
    </div>
    <div class="chips">
      {{range .Tags}}
      <span class="chip {{.Class}}">{{.Text}}
        <form method="post" action="/tags/{{.Index}}/delete"><button type="submit" title="Remove">&times;</button></form>
      </span>
      {{end}}
    </div>
  </div>
</section>
{{end}}

<section>
  <h2>{{.TipsTitle}}</h2>
  <div class="tips">
    {{range .Tips}}
    <div class="panel"><h4>{{.Title}}</h4><p>{{.Body}}</p></div>
    {{end}}
  </div>
</section>
</main>
<footer>{{.Footer}}</footer>

<script>
(function () {
  var busy = false;
  var form = document.getElementById("generate-form");
  if (form) {
    form.addEventListener("submit", function () {
      busy = true;
      var button = document.getElementById("generate-button");
      button.disabled = true;
      button.textContent = button.getAttribute("data-processing");
    });
  }
  var copy = document.getElementById("copy-form");
  if (copy) {
    copy.addEventListener("submit", function () {
      busy = true;
      if (navigator.clipboard) {
        navigator.clipboard.writeText(copy.getAttribute("data-tags"));
      }
    });
  }
  if (!window.WebSocket) {
    return;
  }
  var scheme = location.protocol === "https:" ? "wss://" : "ws://";
  var socket = new WebSocket(scheme + location.host + "/ws");
  var shown = document.body.getAttribute("data-version");
  socket.onmessage = function (event) {
    var msg = JSON.parse(event.data);
    if (msg.type === "results") {
      var results = document.getElementById("results");
      if (results) {
        results.scrollIntoView({ behavior: "smooth" });
      }
      return;
    }
    if (msg.type === "state" && msg.version !== shown && !busy) {
      location.reload();
    }
  };
})();
</script>
</body>
</html>
`

package web

import (
	"html/template"
	"net/http"

	"ai-video-pipeline/internal/domain/model"
)

// Page serves the single demo page: the request form on the left, the
// stage cards on the right. The cards render idle from the catalog and
// are re-painted by the inline script from the JSON response.
type Page struct{}

func NewPage() *Page { return &Page{} }

func (p *Page) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = page.Execute(w, struct {
		Stages []model.PipelineStage
	}{Stages: model.CatalogStages()})
}

var page = template.Must(template.New("pipeline").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width,initial-scale=1" />
<title>AI Video Pipeline</title>
<style>
body{font-family:system-ui,Arial,sans-serif;margin:2rem;background:#0b0f19;color:#e6e8ef}
h1{font-size:1.4rem}
.layout{display:grid;grid-template-columns:380px 1fr;gap:24px;max-width:1100px}
.card{border:1px solid #2a3350;border-radius:12px;padding:16px;background:#121830}
label{display:block;font-size:13px;margin:10px 0 4px;color:#9aa3bd}
input,textarea{width:100%;box-sizing:border-box;padding:8px;border-radius:8px;border:1px solid #2a3350;background:#0b0f19;color:#e6e8ef}
textarea{min-height:140px}
button{margin-top:14px;padding:10px 18px;border-radius:8px;border:0;background:#4f6ef7;color:#fff;cursor:pointer}
button:disabled{opacity:.5}
.stage{border:1px solid #2a3350;border-radius:10px;padding:10px 14px;margin-bottom:10px}
.stage h3{margin:0;font-size:14px}
.stage p{margin:6px 0 0;font-size:13px;color:#9aa3bd}
.status{float:right;font-size:11px;text-transform:uppercase;letter-spacing:.08em}
.idle{color:#9aa3bd} .running{color:#f7c948} .completed{color:#34d399} .failed{color:#f87171}
.err{color:#f87171;font-size:13px;margin-top:8px;white-space:pre-wrap}
.assets{font-size:13px;margin-top:12px}
.assets a{color:#4f6ef7}
</style>
</head>
<body>
<h1>AI Video Pipeline</h1>
<div class="layout">
  <div class="card">
    <form id="f">
      <label>Project name</label>
      <input name="projectName" placeholder="My first short" />
      <label>Script</label>
      <textarea name="script" placeholder="Paste the narration script here..."></textarea>
      <label>Voice profile (optional)</label>
      <input name="voiceProfile" />
      <label>Target language (optional)</label>
      <input name="targetLanguage" placeholder="en-US" />
      <label><input type="checkbox" name="autoUploadEnabled" style="width:auto" /> Upload to YouTube when done</label>
      <label>Schedule at (optional, ISO timestamp)</label>
      <input name="scheduleAt" placeholder="2026-09-01T18:00" />
      <button type="submit">Generate video</button>
      <div class="err" id="err"></div>
    </form>
  </div>
  <div class="card" id="stages">
    {{range .Stages}}
    <div class="stage" data-key="{{.Key}}">
      <span class="status idle">idle</span>
      <h3>{{.Title}}</h3>
      <p>{{.Summary}}</p>
    </div>
    {{end}}
    <div class="assets" id="assets"></div>
  </div>
</div>
<script>
const f = document.getElementById('f');
f.addEventListener('submit', async (e) => {
  e.preventDefault();
  const btn = f.querySelector('button');
  const errBox = document.getElementById('err');
  errBox.textContent = '';
  const fd = new FormData(f);
  const body = {
    projectName: fd.get('projectName'),
    script: fd.get('script'),
    voiceProfile: fd.get('voiceProfile') || undefined,
    targetLanguage: fd.get('targetLanguage') || undefined,
    autoUploadEnabled: fd.get('autoUploadEnabled') === 'on',
    scheduleAt: fd.get('scheduleAt') || undefined,
  };
  btn.disabled = true;
  document.querySelectorAll('.stage .status').forEach(el => { el.textContent = 'running'; el.className = 'status running'; });
  try {
    const res = await fetch('/api/pipeline', {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify(body),
    });
    const data = await res.json();
    if (!res.ok) {
      document.querySelectorAll('.stage .status').forEach(el => { el.textContent = 'idle'; el.className = 'status idle'; });
      if (data.details) {
        errBox.textContent = Object.values(data.details).flat().join('\n');
      } else {
        errBox.textContent = data.message || data.error || 'Request failed';
      }
      return;
    }
    for (const st of data.stages) {
      const card = document.querySelector('.stage[data-key="' + st.key + '"]');
      if (!card) continue;
      const badge = card.querySelector('.status');
      badge.textContent = st.status;
      badge.className = 'status ' + st.status;
      if (st.summary) card.querySelector('p').textContent = st.summary;
      if (st.error) errBox.textContent = st.error;
    }
    const a = data.assets || {};
    const links = [];
    if (a.videoUrl) links.push('<a href="' + a.videoUrl + '">video</a>');
    if (a.voiceoverUrl) links.push('<a href="' + a.voiceoverUrl + '">voiceover</a>');
    if (a.subtitlesUrl) links.push('<a href="' + a.subtitlesUrl + '">subtitles</a>');
    if (a.thumbnailUrl) links.push('<a href="' + a.thumbnailUrl + '">thumbnail</a>');
    document.getElementById('assets').innerHTML = links.length ? 'Assets: ' + links.join(' · ') : '';
  } catch (err) {
    errBox.textContent = String(err);
  } finally {
    btn.disabled = false;
  }
});
</script>
</body>
</html>`))

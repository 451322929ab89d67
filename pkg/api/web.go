package api

import (
	"html/template"
	"net/http"

	"github.com/rs/zerolog"
)

type option struct {
	Value, Label string
}

type indexData struct {
	InfoPath     string
	DownloadPath string
	Formats      []option
	Qualities    []option
}

var indexPage = indexData{
	InfoPath:     infoPath,
	DownloadPath: downloadPath,
	Formats: []option{
		{"mp3", "Audio"},
		{"mp4", "Video"},
	},
	Qualities: []option{
		{"high", "High"},
		{"medium", "Medium"},
		{"low", "Low"},
	},
}

var indexTmpl = template.Must(template.New("index").Parse(tmpl))

func (s *Server) handleWebIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		respondError(w, http.StatusNotFound, "Not found")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, indexPage); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("remote", r.RemoteAddr).Msg("Template execution failed")
	}
}

var tmpl = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>TubeSave</title>
    <style>
        :root { --bg: #121212; --card: #1e1e1e; --text: #e0e0e0; --accent: #ff4444; }
        body { background: var(--bg); color: var(--text); font-family: system-ui, sans-serif; display: grid; place-items: center; min-height: 100vh; margin: 0; }
        .container { background: var(--card); padding: 2rem; border-radius: 12px; box-shadow: 0 10px 30px rgba(0,0,0,0.5); width: 90%; max-width: 420px; text-align: center; }
        h1 { margin: 0 0 1rem; font-size: 1.5rem; color: var(--accent); }
        input, select { width: 100%; padding: 12px; margin: 6px 0; border: 1px solid #333; border-radius: 6px; background: #252525; color: #fff; box-sizing: border-box; outline: none; }
        input:focus, select:focus { border-color: var(--accent); }
        .row { display: flex; gap: 8px; }
        button { width: 100%; padding: 12px; margin-top: 6px; border: none; border-radius: 6px; background: var(--accent); color: white; font-weight: bold; cursor: pointer; transition: 0.2s; }
        button.secondary { background: #333; }
        button:disabled { background: #555; cursor: not-allowed; }
        #preview { margin-top: 16px; line-height: 1.5; }
        #preview img { max-width: 100%; border-radius: 6px; }
        .error { color: var(--accent); font-size: 0.9rem; margin-top: 12px; word-break: break-word; }
    </style>
</head>
<body>
    <div class="container">
        <h1>TubeSave</h1>
        <input type="url" id="url" placeholder="Paste YouTube URL..." required>
        <div class="row">
            <select id="format">{{range .Formats}}<option value="{{.Value}}">{{.Label}}</option>{{end}}</select>
            <select id="quality">{{range .Qualities}}<option value="{{.Value}}">{{.Label}}</option>{{end}}</select>
        </div>
        <button class="secondary" id="previewBtn">Preview</button>
        <button id="downloadBtn">Download</button>
        <div id="preview"></div>
        <div class="error" id="error"></div>
    </div>

    <script>
        const $ = (id) => document.getElementById(id);
        const buttons = [$('previewBtn'), $('downloadBtn')];
        let busy = false;

        const setBusy = (v) => { busy = v; buttons.forEach(b => b.disabled = v); };
        const showError = (msg) => { $('error').textContent = msg || ''; };
        const fmtDuration = (s) => {
            const m = Math.floor(s / 60), r = String(s % 60).padStart(2, '0');
            return m + ':' + r;
        };

        const post = (path, body) => fetch(path, {
            method: 'POST',
            headers: {'Content-Type': 'application/json'},
            body: JSON.stringify(body)
        });

        const errorOf = async (resp) => {
            try { return (await resp.json()).error; } catch (_) { return resp.statusText; }
        };

        const filenameOf = (resp) => {
            const cd = resp.headers.get('Content-Disposition') || '';
            const m = cd.match(/filename="?([^"]+)"?/);
            return m ? m[1] : 'download';
        };

        $('previewBtn').onclick = async () => {
            if (busy) return;
            const url = $('url').value.trim();
            if (!url) return;
            setBusy(true);
            showError('');
            try {
                const resp = await post('{{.InfoPath}}', {url});
                if (!resp.ok) throw new Error(await errorOf(resp));
                const d = (await resp.json()).videoDetails;
                const p = $('preview');
                p.innerHTML = '';
                if (d.thumbnail) {
                    const img = document.createElement('img');
                    img.src = d.thumbnail;
                    p.appendChild(img);
                }
                const meta = document.createElement('div');
                meta.innerHTML = '<b></b><br><span></span>';
                meta.querySelector('b').textContent = d.title;
                meta.querySelector('span').textContent = d.author + ' · ' + fmtDuration(d.duration);
                p.appendChild(meta);
            } catch (err) {
                showError(err.message);
            } finally {
                setBusy(false);
            }
        };

        $('downloadBtn').onclick = async () => {
            if (busy) return;
            const url = $('url').value.trim();
            if (!url) return;
            setBusy(true);
            showError('');
            try {
                const resp = await post('{{.DownloadPath}}', {
                    url,
                    format: $('format').value,
                    quality: $('quality').value
                });
                if (!resp.ok) throw new Error(await errorOf(resp));
                const blob = await resp.blob();
                const href = URL.createObjectURL(blob);
                const a = document.createElement('a');
                a.href = href;
                a.download = filenameOf(resp);
                document.body.appendChild(a);
                a.click();
                a.remove();
                URL.revokeObjectURL(href);
            } catch (err) {
                showError(err.message);
            } finally {
                setBusy(false);
            }
        };
    </script>
</body>
</html>
`

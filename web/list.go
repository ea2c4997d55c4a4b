package web

import (
	"html/template"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/jazzpaper/reinhardt/core"
	"github.com/jazzpaper/reinhardt/util"
	"github.com/julienschmidt/httprouter"
)

const articlesPerPage = 10
const teaserLimit = 1000 // bytes of rendered HTML

var listTmpl = tmpl(`<h2>Articles</h2>

	{{ range .Articles }}
		<article class="article-entry">
			<h3><a href="articles/{{ .ID }}/">{{ .Title }}</a></h3>
			<div class="article-meta">
				written by {{ .AuthorName }} on {{ $.FormatDateTime .TsCreated }}
			</div>
			<div class="article-teaser">
				{{ .Teaser }}
				{{ if .Cut }}
					<p class="article-more">
						<a href="articles/{{ .ID }}/">Read more</a>
					</p>
				{{ end }}
			</div>
		</article>
	{{ else }}
		<p>No articles yet.</p>
	{{ end }}

	<div class="pagelinks">
		{{ range .PageLinks }}
			{{ . }}
		{{ end }}
	</div>`)

type listArticle struct {
	*core.Article
	Teaser template.HTML
	Cut    bool
}

type listData struct {
	*context
	Articles []*listArticle
	page     int
	pages    int
}

func (d *listData) PageLinks() []template.HTML {
	return util.PageLinks(
		d.page,
		d.pages,
		func(page int, name string) string {
			return `<a href="articles/?page=` + strconv.Itoa(page) + `">` + name + `</a>`
		},
		func(page int, name string) string {
			return `<span>` + name + `</span>`
		},
	)
}

func list(w http.ResponseWriter, req *http.Request, ctx *context, _ httprouter.Params) error {

	page, _ := strconv.Atoi(req.URL.Query().Get("page"))

	count, err := ctx.app.CountArticles()
	if err != nil {
		return err
	}
	pages := int(math.Ceil(float64(count) / float64(articlesPerPage)))

	if page < 1 {
		page = 1
	}
	if page > pages && pages > 0 {
		page = pages
	}

	articles, err := ctx.app.GetAllArticles(articlesPerPage, (page-1)*articlesPerPage)
	if err != nil {
		return err
	}

	var result = make([]*listArticle, 0, len(articles))
	for _, a := range articles {

		// an explicit "more" marker in the source wins over the byte limit
		source, cut := util.CutMore(a.Content)
		body := string(renderMarkdown(source))
		if !cut {
			body, cut = util.TruncateHTML(strings.NewReader(body), teaserLimit)
		}

		result = append(result, &listArticle{
			Article: a,
			Teaser:  template.HTML(body),
			Cut:     cut,
		})
	}

	return listTmpl.Execute(w, &listData{
		context:  ctx,
		Articles: result,
		page:     page,
		pages:    pages,
	})
}

// Package render walks a profile's layout tree and produces the node
// tree the public page is built from. Rendering one section never
// depends on another: a node that fails drops out and its siblings
// render unaffected.
package render

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/linkgrove/linkgrove-v2/backend/internal/embed"
	"github.com/linkgrove/linkgrove-v2/backend/internal/sanitize"
	"github.com/linkgrove/linkgrove-v2/backend/internal/types"
)

const (
	// DefaultSpacerHeight applies when a spacer section has no usable
	// height of its own.
	DefaultSpacerHeight = 20

	// maxAPIBody caps how much of an api section's response is kept.
	maxAPIBody = 64 * 1024

	apiFetchTimeout = 5 * time.Second
)

// SandboxStore receives inline script bodies extracted from custom
// content and returns a document ID the sandbox endpoint serves them
// under. index distinguishes multiple scripts within one section, so
// each gets its own document. Implementations isolate execution from
// the host page.
type SandboxStore interface {
	Put(ctx context.Context, profileID, sectionID string, index int, script string) (string, error)
}

// Renderer turns layout sections into output nodes. It is stateless
// across renders; per-render state (in-flight api fetches) lives on the
// call stack of RenderTree.
type Renderer struct {
	sanitizer *sanitize.Sanitizer
	sandbox   SandboxStore
	client    *http.Client
	logger    *log.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithHTTPClient overrides the client used for api section fetches.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Renderer) { r.client = c }
}

// WithLogger overrides the diagnostics logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// New creates a Renderer. sandbox may be nil, in which case custom
// section scripts are stripped instead of isolated.
func New(sanitizer *sanitize.Sanitizer, sandbox SandboxStore, opts ...Option) *Renderer {
	r := &Renderer{
		sanitizer: sanitizer,
		sandbox:   sandbox,
		client:    &http.Client{Timeout: apiFetchTimeout},
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderTree renders an ordered section list against a profile page
// aggregate. Sibling order is preserved; sections that render to
// nothing (unknown type, dangling references, bad data) are omitted.
// Api section fetches run concurrently and are joined before return;
// cancelling ctx abandons them without leaving goroutines writing into
// the returned tree.
func (r *Renderer) RenderTree(ctx context.Context, sections []types.LayoutSection, page *types.ProfilePage) []*Node {
	var wg sync.WaitGroup
	nodes := r.renderSections(ctx, sections, page, &wg)
	wg.Wait()
	return nodes
}

func (r *Renderer) renderSections(ctx context.Context, sections []types.LayoutSection, page *types.ProfilePage, wg *sync.WaitGroup) []*Node {
	nodes := make([]*Node, 0, len(sections))
	for i := range sections {
		if node := r.renderSection(ctx, &sections[i], page, wg); node != nil {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// renderSection dispatches on the section variant. The recover fence
// keeps a panic in one section from taking the page down with it.
func (r *Renderer) renderSection(ctx context.Context, section *types.LayoutSection, page *types.ProfilePage, wg *sync.WaitGroup) (node *Node) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Printf("[Renderer] section %q (%s) panicked: %v", section.ID, section.Type, rec)
			node = nil
		}
	}()

	switch section.Type {
	case types.SectionBio:
		node = r.renderBio(section, page)
	case types.SectionLinks:
		node = r.renderLinks(section, page)
	case types.SectionWidget:
		node = r.renderWidget(ctx, section, page)
	case types.SectionSpacer:
		node = r.renderSpacer(section)
	case types.SectionCustom:
		node = r.renderCustom(ctx, section, page)
	case types.SectionForm:
		node = r.renderForm(section)
	case types.SectionEcommerce:
		node = r.renderEcommerce(section, page)
	case types.SectionTab, types.SectionColumn:
		node = r.renderGroup(ctx, section, page, wg)
	case types.SectionAPI:
		node = r.renderAPI(ctx, section, wg)
	case types.SectionCalendar:
		node = &Node{Kind: NodeCalendar, SectionID: section.ID, Styling: section.Styling}
	case types.SectionPage:
		node = r.renderPageRef(section)
	default:
		// Unknown variants render as nothing, never an error.
		node = nil
	}
	return node
}

func (r *Renderer) renderBio(section *types.LayoutSection, page *types.ProfilePage) *Node {
	name := page.DisplayName
	if name == "" {
		name = page.Username
	}
	return &Node{
		Kind:      NodeBio,
		SectionID: section.ID,
		Styling:   section.Styling,
		Bio: &BioData{
			DisplayName:     name,
			Location:        page.Location,
			BioText:         page.Bio,
			AvatarURL:       page.AvatarURL,
			AvatarFallback:  initialLetter(name),
			Level:           page.Stats.Level,
			LoginStreak:     page.Stats.LoginStreak,
			ProgressPercent: (page.Stats.XP % 1000) / 10,
			ViewCount:       page.Stats.ViewCount,
			Badges:          page.Badges,
		},
	}
}

// initialLetter is the avatar fallback shown when the image is absent
// or fails to load client-side.
func initialLetter(name string) string {
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return strings.ToUpper(string(r))
		}
	}
	return "?"
}

// renderLinks lists every stored link in order. Links without a URL are
// listed inert (title and icon only) rather than filtered; display
// policy stays with the data.
func (r *Renderer) renderLinks(section *types.LayoutSection, page *types.ProfilePage) *Node {
	node := &Node{Kind: NodeLinkList, SectionID: section.ID, Styling: section.Styling}
	for _, link := range page.Links {
		node.Children = append(node.Children, &Node{
			Kind:  NodeLink,
			Title: link.Title,
			URL:   link.URL,
			Icon:  link.Icon,
		})
	}
	return node
}

// renderWidget resolves the section's widget reference and dispatches
// again on the widget type. A dangling reference or an unrecognized
// widget type renders nothing.
func (r *Renderer) renderWidget(ctx context.Context, section *types.LayoutSection, page *types.ProfilePage) *Node {
	widget, ok := page.Widget(section.WidgetID)
	if !ok {
		return nil
	}

	switch widget.Type {
	case types.WidgetYouTube:
		src := embed.YouTubeEmbedURL(widget.URL)
		if src == "" {
			return nil
		}
		return &Node{Kind: NodeEmbed, SectionID: section.ID, Provider: "youtube", URL: src, Title: widget.Title, Styling: section.Styling}
	case types.WidgetSpotify:
		src := embed.SpotifyEmbedURL(widget.URL)
		if src == "" {
			return nil
		}
		return &Node{Kind: NodeEmbed, SectionID: section.ID, Provider: "spotify", URL: src, Title: widget.Title, Styling: section.Styling}
	case types.WidgetTwitter:
		if widget.URL == "" {
			return nil
		}
		return &Node{Kind: NodeEmbed, SectionID: section.ID, Provider: "twitter", URL: widget.URL, Title: widget.Title, Styling: section.Styling}
	case types.WidgetCustom:
		return r.renderCustomContent(ctx, section.ID, widget.Content, section.Styling, page)
	default:
		return nil
	}
}

func (r *Renderer) renderSpacer(section *types.LayoutSection) *Node {
	height := section.Height
	if height <= 0 {
		height = DefaultSpacerHeight
	}
	return &Node{Kind: NodeSpacer, SectionID: section.ID, Height: height, Styling: section.Styling}
}

func (r *Renderer) renderCustom(ctx context.Context, section *types.LayoutSection, page *types.ProfilePage) *Node {
	return r.renderCustomContent(ctx, section.ID, section.Content, section.Styling, page)
}

// renderCustomContent routes user-authored markup through the
// sanitizer. Inline scripts never reach the output markup: they are
// handed to the sandbox store and referenced by a sandbox child node,
// or dropped when no store is configured.
func (r *Renderer) renderCustomContent(ctx context.Context, sectionID, content string, styling map[string]string, page *types.ProfilePage) *Node {
	scripts, rest := r.sanitizer.ExtractScripts(content)
	node := &Node{
		Kind:      NodeHTML,
		SectionID: sectionID,
		HTML:      r.sanitizer.Sanitize(rest),
		Styling:   styling,
	}
	if r.sandbox == nil {
		return node
	}
	for i, script := range scripts {
		docID, err := r.sandbox.Put(ctx, page.ProfileID.String(), sectionID, i, script)
		if err != nil {
			r.logger.Printf("[Renderer] sandbox store failed for section %q: %v", sectionID, err)
			continue
		}
		node.Children = append(node.Children, &Node{Kind: NodeSandbox, URL: "/api/v1/sandbox/" + docID})
	}
	return node
}

// renderForm materializes the JSON field descriptors in the section
// content. Malformed JSON fails closed: an empty form, not a render
// failure.
func (r *Renderer) renderForm(section *types.LayoutSection) *Node {
	node := &Node{Kind: NodeForm, SectionID: section.ID, Styling: section.Styling}
	var fields []FormField
	if err := json.Unmarshal([]byte(section.Content), &fields); err != nil {
		r.logger.Printf("[Renderer] form section %q has malformed field spec: %v", section.ID, err)
		return node
	}
	for _, f := range fields {
		node.Children = append(node.Children, &Node{
			Kind:    NodeField,
			Title:   f.Placeholder,
			Text:    f.ID,
			Variant: f.Type,
		})
	}
	return node
}

// renderEcommerce emits the checkout trigger. The payment flow itself
// belongs to the checkout collaborator behind the page's checkout
// endpoint; rendering only points at it.
func (r *Renderer) renderEcommerce(section *types.LayoutSection, page *types.ProfilePage) *Node {
	return &Node{
		Kind:      NodeCheckout,
		SectionID: section.ID,
		Text:      section.Content,
		URL:       "/api/v1/pages/" + page.Username + "/checkout",
		Styling:   section.Styling,
	}
}

func (r *Renderer) renderGroup(ctx context.Context, section *types.LayoutSection, page *types.ProfilePage, wg *sync.WaitGroup) *Node {
	return &Node{
		Kind:      NodeGroup,
		SectionID: section.ID,
		Variant:   string(section.Type),
		Styling:   section.Styling,
		Children:  r.renderSections(ctx, section.Children, page, wg),
	}
}

// renderAPI returns its node immediately and fills the body in from a
// concurrent read-only fetch. The fetch honors ctx: when the render is
// abandoned the request is cancelled and the node is left empty, so no
// write lands after the caller has moved on past wg.Wait.
func (r *Renderer) renderAPI(ctx context.Context, section *types.LayoutSection, wg *sync.WaitGroup) *Node {
	url := strings.TrimSpace(section.Content)
	node := &Node{Kind: NodeAPIData, SectionID: section.ID, URL: url, Styling: section.Styling}
	if url == "" || (!strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://")) {
		return node
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		body, err := r.fetch(ctx, url)
		if err != nil {
			r.logger.Printf("[Renderer] api section %q fetch failed: %v", section.ID, err)
			return
		}
		node.Text = body
	}()
	return node
}

func (r *Renderer) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAPIBody))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (r *Renderer) renderPageRef(section *types.LayoutSection) *Node {
	if section.PagePath == "" {
		return nil
	}
	return &Node{
		Kind:      NodePageRef,
		SectionID: section.ID,
		URL:       section.PagePath,
		Title:     section.Content,
		Styling:   section.Styling,
	}
}

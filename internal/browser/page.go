package browser

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/pkg/errors"

	"github.com/orshemtov/auto10bis/internal/types"
)

// textSelector covers the element kinds the storefront renders plain
// text and labels into.
const textSelector = "div, span, p, a, li, label, h1, h2, h3, dt, dd"

// Page implements the tenbis.Page operations over one rod page.
type Page struct {
	page   *rod.Page
	logger types.Logger
}

// Navigate opens url and waits for the load event.
func (p *Page) Navigate(ctx context.Context, url string) error {
	pg := p.page.Context(ctx)

	if err := pg.Navigate(url); err != nil {
		return errors.Wrapf(err, "failed to navigate to %s", url)
	}
	if err := pg.WaitLoad(); err != nil {
		return errors.Wrapf(err, "page did not finish loading: %s", url)
	}

	p.debug("Navigated", "url", url)
	return nil
}

// WaitLoad waits for the current navigation to settle.
func (p *Page) WaitLoad(ctx context.Context) error {
	if err := p.page.Context(ctx).WaitLoad(); err != nil {
		return errors.Wrap(err, "page did not finish loading")
	}
	return nil
}

// WaitVisible waits until target is visible or the window elapses.
func (p *Page) WaitVisible(ctx context.Context, target types.Target, timeout time.Duration) error {
	pg := p.page.Context(ctx).Timeout(timeout)

	el, err := p.resolve(pg, target)
	if err != nil {
		return waitError(err, target, timeout)
	}
	if err := el.WaitVisible(); err != nil {
		return waitError(err, target, timeout)
	}

	return nil
}

// Visible probes for target. The wait window elapsing means "not
// there", not an error.
func (p *Page) Visible(ctx context.Context, target types.Target, timeout time.Duration) (bool, error) {
	err := p.WaitVisible(ctx, target, timeout)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, types.ErrElementNotFound) || errors.Is(err, context.DeadlineExceeded) {
		return false, nil
	}
	return false, err
}

// Click waits for target to be visible, then clicks it.
func (p *Page) Click(ctx context.Context, target types.Target, timeout time.Duration) error {
	pg := p.page.Context(ctx).Timeout(timeout)

	el, err := p.resolve(pg, target)
	if err != nil {
		return waitError(err, target, timeout)
	}
	if err := el.WaitVisible(); err != nil {
		return waitError(err, target, timeout)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return errors.Wrapf(err, "failed to click %q", target.Name)
	}

	p.debug("Clicked", "role", string(target.Role), "name", target.Name)
	return nil
}

// Fill waits for target to be visible, then types value into it.
func (p *Page) Fill(ctx context.Context, target types.Target, value string, timeout time.Duration) error {
	pg := p.page.Context(ctx).Timeout(timeout)

	el, err := p.resolve(pg, target)
	if err != nil {
		return waitError(err, target, timeout)
	}
	if err := el.WaitVisible(); err != nil {
		return waitError(err, target, timeout)
	}
	if err := el.Input(value); err != nil {
		return errors.Wrapf(err, "failed to fill %q", target.Name)
	}

	p.debug("Filled", "name", target.Name)
	return nil
}

// TextByLabel locates the element whose text exactly equals label,
// resolves its layout-adjacent node per rel, and returns that node's
// text. The report lays each card out as an amount node immediately
// followed by its label node.
func (p *Page) TextByLabel(ctx context.Context, label string, rel types.Relation, timeout time.Duration) (string, error) {
	pg := p.page.Context(ctx).Timeout(timeout)

	labelEl, err := pg.ElementR(textSelector, exactPattern(label))
	if err != nil {
		return "", waitError(err, types.Target{Role: types.RoleText, Name: label}, timeout)
	}

	var valueEl *rod.Element
	switch rel {
	case types.RelationPrecedingSibling:
		valueEl, err = labelEl.Previous()
	case types.RelationParent:
		valueEl, err = labelEl.Parent()
	default:
		return "", errors.Errorf("unsupported label relation %s", rel)
	}
	if err != nil {
		return "", errors.Wrapf(err, "no %s node for label %q", rel, label)
	}

	text, err := valueEl.Text()
	if err != nil {
		return "", errors.Wrapf(err, "failed to read text for label %q", label)
	}

	p.debug("Resolved label", "label", label, "relation", rel.String(), "text", text)
	return text, nil
}

// Screenshot captures a PNG of the current viewport.
func (p *Page) Screenshot(ctx context.Context) ([]byte, error) {
	data, err := p.page.Context(ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to capture screenshot")
	}
	return data, nil
}

// PDF renders the current page for print: A4 paper, background
// graphics included.
func (p *Page) PDF(ctx context.Context) ([]byte, error) {
	reader, err := p.page.Context(ctx).PDF(&proto.PagePrintToPDF{
		PrintBackground: true,
		PaperWidth:      float64Ptr(8.27),
		PaperHeight:     float64Ptr(11.69),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to render PDF")
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read PDF stream")
	}
	return data, nil
}

// resolve finds the element a target describes. Buttons and links
// match by role selector plus accessible-name regex; inputs match by
// aria-label or placeholder; text matches any text-bearing element.
func (p *Page) resolve(pg *rod.Page, target types.Target) (*rod.Element, error) {
	switch target.Role {
	case types.RoleInput:
		sel := fmt.Sprintf(
			`input[aria-label=%[1]q], input[placeholder=%[1]q], textarea[aria-label=%[1]q]`,
			target.Name)
		return pg.Element(sel)
	case types.RoleText:
		return pg.ElementR(textSelector, namePattern(target))
	default:
		sel := fmt.Sprintf(`%[1]s, [role=%[1]q]`, string(target.Role))
		return pg.ElementR(sel, namePattern(target))
	}
}

// namePattern builds the accessible-name regex for a target. Exact
// targets anchor both ends; prefix targets anchor the start only, to
// tolerate dynamic suffixes like a trailing price.
func namePattern(target types.Target) string {
	quoted := regexp.QuoteMeta(target.Name)
	if target.Prefix {
		return "/^\\s*" + quoted + "/"
	}
	return "/^\\s*" + quoted + "\\s*$/"
}

func exactPattern(text string) string {
	return "/^\\s*" + regexp.QuoteMeta(text) + "\\s*$/"
}

// waitError maps an elapsed bounded wait to the flow's typed error
// taxonomy. An elapsed window is both an absent element and a timeout,
// so the returned *types.Error matches either sentinel.
func waitError(err error, target types.Target, timeout time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &types.Error{
			Code:    "element_not_found",
			Message: fmt.Sprintf("%s %q did not appear within %s", target.Role, target.Name, timeout),
			Err:     stderrors.Join(types.ErrElementNotFound, types.ErrTimeout),
		}
	}
	return errors.Wrapf(err, "failed to locate %s %q", target.Role, target.Name)
}

func (p *Page) debug(msg string, keysAndValues ...interface{}) {
	if p.logger != nil {
		p.logger.Debug(msg, keysAndValues...)
	}
}

func float64Ptr(v float64) *float64 {
	return &v
}

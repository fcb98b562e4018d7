// Folio: A streamlined CLI tool for searching and downloading web novels.
// Copyright (C) 2025 Luca M. Schmidt (LuMiSxh)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package fanqie

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"Folio/pkg/core"
	"Folio/pkg/engine/logger"
	"Folio/pkg/engine/network"
	"Folio/pkg/engine/parser"
	"Folio/pkg/errors"
)

const unknownField = "Unknown"

// Client talks to the Fanqie mirror pool
type Client struct {
	http      *network.HTTPService
	fallback  *network.Fallback
	endpoints []core.Endpoint
	logger    logger.Logger
}

// NewClient creates a Client over endpoints, tried in the given order.
func NewClient(http *network.HTTPService, endpoints []core.Endpoint, log logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}

	addresses := make([]string, len(endpoints))
	for i, ep := range endpoints {
		addresses[i] = strings.TrimRight(ep.Address, "/")
	}

	return &Client{
		http:      http,
		fallback:  network.NewFallback(addresses, log),
		endpoints: append([]core.Endpoint(nil), endpoints...),
		logger:    log,
	}
}

func (c *Client) ID() string   { return ID }
func (c *Client) Name() string { return Name }

// Endpoints returns every configured mirror in fallback order.
func (c *Client) Endpoints() []core.Endpoint {
	return append([]core.Endpoint(nil), c.endpoints...)
}

// ListedEndpoints returns the mirrors flagged for display.
func (c *Client) ListedEndpoints() []core.Endpoint {
	var listed []core.Endpoint
	for _, ep := range c.endpoints {
		if ep.Listed {
			listed = append(listed, ep)
		}
	}
	return listed
}

type envelope struct {
	Code    optInt          `json:"code"`
	Message optString       `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// fetch issues one GET against base and returns the payload of a successful
// envelope.
func (c *Client) fetch(ctx context.Context, base, path string, params url.Values) (json.RawMessage, error) {
	target := network.BuildURL(base, path, params)

	var env envelope
	if err := c.http.FetchJSON(ctx, target, &env); err != nil {
		return nil, err
	}
	if !env.Code.Set || env.Code.Value != successCode {
		return nil, errors.Track(fmt.Errorf("%w: code %d", errors.ErrUnexpectedStatus, env.Code.Value)).
			WithContext("url", target).
			WithContext("message", env.Message.Value).
			AsProvider(ID).
			Error()
	}
	return env.Data, nil
}

// Search returns one page of results for keyword
func (c *Client) Search(ctx context.Context, keyword string, offset int) (*core.SearchResult, error) {
	params := url.Values{
		"key":      {keyword},
		"tab_type": {searchTabType},
		"offset":   {strconv.Itoa(offset)},
	}

	result, err := network.Try(ctx, c.fallback, func(ctx context.Context, base string) (*core.SearchResult, error) {
		data, err := c.fetch(ctx, base, searchPath, params)
		if err != nil {
			return nil, err
		}
		return c.parseSearch(data), nil
	})
	if err != nil {
		return nil, errors.Track(err).WithContext("query", keyword).Error()
	}
	return result, nil
}

func (c *Client) parseSearch(data json.RawMessage) *core.SearchResult {
	result := &core.SearchResult{Books: []core.Book{}}

	var payload struct {
		SearchTabs json.RawMessage `json:"search_tabs"`
	}
	if !isObject(data) || json.Unmarshal(data, &payload) != nil {
		return result
	}
	tabs, _ := asArray(payload.SearchTabs)

	for _, rawTab := range tabs {
		var tab struct {
			Data    json.RawMessage `json:"data"`
			HasMore optBool         `json:"has_more"`
		}
		if !isObject(rawTab) || json.Unmarshal(rawTab, &tab) != nil {
			continue
		}
		items, ok := asArray(tab.Data)
		if !ok || len(items) == 0 {
			continue
		}

		result.HasMore = tab.HasMore.Value
		for _, raw := range items {
			item, shapeName, err := matchShape(raw, searchItemShapes...)
			if err != nil {
				c.logger.Debug("[Fanqie] Skipping search item: %v", err)
				continue
			}
			id := firstString("", item.id, item.record.BookID)
			if id == "" {
				continue
			}
			c.logger.Debug("[Fanqie] Search item %s decoded as %s", id, shapeName)

			rec := item.record
			result.Books = append(result.Books, core.Book{
				ID:           id,
				Title:        firstString(unknownField, rec.BookName),
				Author:       firstString(unknownField, rec.Author),
				CoverURL:     firstString("", rec.ThumbURL, rec.CoverURL),
				Description:  rec.Abstract.Value,
				WordCount:    firstInt(rec.WordNumber, rec.WordCount),
				ChapterCount: firstInt(rec.SerialCount, rec.ChapterNumber),
				Category:     rec.Category.ptr(),
				Status:       rec.CreationStatus.ptr(),
			})
		}
		break
	}

	result.Total = len(result.Books)
	return result
}

// BookDetail fetches the metadata of one book. A delisted book yields
// errors.ErrBookRemoved without trying further mirrors.
func (c *Client) BookDetail(ctx context.Context, bookID string) (*core.Book, error) {
	params := url.Values{"book_id": {bookID}}

	book, err := network.Try(ctx, c.fallback, func(ctx context.Context, base string) (*core.Book, error) {
		data, err := c.fetch(ctx, base, detailPath, params)
		if err != nil {
			return nil, err
		}

		rec, shapeName, err := matchShape(data, detailShapes...)
		if err != nil {
			return nil, errors.Track(err).WithContext("book_id", bookID).AsParser().Error()
		}
		c.logger.Debug("[Fanqie] Detail for %s decoded as %s", bookID, shapeName)

		if rec.Message.Value == removedMessage {
			return nil, network.Halt(errors.Track(errors.ErrBookRemoved).
				WithContext("book_id", bookID).
				AsNotFound().
				Error())
		}

		return &core.Book{
			ID:           bookID,
			Title:        firstString(unknownField, rec.BookName),
			Author:       firstString(unknownField, rec.Author),
			CoverURL:     firstString("", rec.ThumbURL, rec.CoverURL),
			Description:  rec.Abstract.Value,
			WordCount:    firstInt(rec.WordCount),
			ChapterCount: firstInt(rec.SerialCount, rec.ChapterCount),
			Category:     rec.Category.ptr(),
			Status:       rec.CreationStatus.ptr(),
		}, nil
	})
	if err != nil {
		return nil, errors.Track(err).WithContext("book_id", bookID).Error()
	}
	return book, nil
}

type stubRecord struct {
	ItemID  optString `json:"item_id"`
	CamelID optString `json:"itemId"`
	Title   optString `json:"title"`
}

func (r stubRecord) stub() core.ChapterStub {
	return core.ChapterStub{
		ID:    firstString("", r.CamelID, r.ItemID),
		Title: r.Title.Value,
	}
}

// Directory returns the primary chapter listing of a book, in provider order.
// Entries without an identifier are kept with an empty ID.
func (c *Client) Directory(ctx context.Context, bookID string) ([]core.ChapterStub, error) {
	params := url.Values{"book_id": {bookID}}

	stubs, err := network.Try(ctx, c.fallback, func(ctx context.Context, base string) ([]core.ChapterStub, error) {
		data, err := c.fetch(ctx, base, directoryPath, params)
		if err != nil {
			return nil, err
		}

		var payload struct {
			Lists json.RawMessage `json:"lists"`
		}
		if !isObject(data) || json.Unmarshal(data, &payload) != nil {
			return nil, errors.Track(errors.ErrUnknownShape).WithContext("book_id", bookID).Error()
		}
		lists, ok := asArray(payload.Lists)
		if !ok {
			return nil, errors.Newf("directory for %s has no chapter list", bookID).AsParser().Error()
		}

		stubs := make([]core.ChapterStub, 0, len(lists))
		for _, raw := range lists {
			var rec struct {
				ItemID optString `json:"item_id"`
				Title  optString `json:"title"`
			}
			if isObject(raw) {
				_ = json.Unmarshal(raw, &rec)
			}
			stubs = append(stubs, core.ChapterStub{ID: rec.ItemID.Value, Title: rec.Title.Value})
		}
		return stubs, nil
	})
	if err != nil {
		return nil, errors.Track(err).WithContext("book_id", bookID).Error()
	}
	return stubs, nil
}

// BookLayout returns the secondary directory description of a book. Only
// entries carrying an identifier are kept; a mirror whose layout has none is
// treated as failed.
func (c *Client) BookLayout(ctx context.Context, bookID string) (*core.BookLayout, error) {
	params := url.Values{"book_id": {bookID}}

	layout, err := network.Try(ctx, c.fallback, func(ctx context.Context, base string) (*core.BookLayout, error) {
		data, err := c.fetch(ctx, base, bookPath, params)
		if err != nil {
			return nil, err
		}

		var outer struct {
			Data json.RawMessage `json:"data"`
		}
		var inner struct {
			Volumes json.RawMessage `json:"chapterListWithVolume"`
			ItemIDs json.RawMessage `json:"allItemIds"`
		}
		if isObject(data) && json.Unmarshal(data, &outer) == nil && isObject(outer.Data) {
			_ = json.Unmarshal(outer.Data, &inner)
		}

		layout := &core.BookLayout{}
		volumes, _ := asArray(inner.Volumes)
		for _, rawVolume := range volumes {
			entries, ok := asArray(rawVolume)
			if !ok {
				continue
			}
			var volume []core.ChapterStub
			for _, raw := range entries {
				var rec stubRecord
				if !isObject(raw) || json.Unmarshal(raw, &rec) != nil {
					continue
				}
				if stub := rec.stub(); stub.ID != "" {
					volume = append(volume, stub)
				}
			}
			if len(volume) > 0 {
				layout.Volumes = append(layout.Volumes, volume)
			}
		}

		ids, _ := asArray(inner.ItemIDs)
		for _, raw := range ids {
			var id optString
			if json.Unmarshal(raw, &id) == nil && id.Value != "" {
				layout.ItemIDs = append(layout.ItemIDs, id.Value)
			}
		}

		if len(layout.Volumes) == 0 && len(layout.ItemIDs) == 0 {
			return nil, errors.Newf("book layout for %s lists no chapters", bookID).AsParser().Error()
		}
		return layout, nil
	})
	if err != nil {
		return nil, errors.Track(err).WithContext("book_id", bookID).Error()
	}
	return layout, nil
}

// ChapterContent fetches and normalizes the text of one chapter
func (c *Client) ChapterContent(ctx context.Context, itemID string) (string, error) {
	params := url.Values{"item_id": {itemID}, "tab": {tabChapter}}

	text, err := network.Try(ctx, c.fallback, func(ctx context.Context, base string) (string, error) {
		data, err := c.fetch(ctx, base, contentPath, params)
		if err != nil {
			return "", err
		}

		raw, _, err := matchShape(data, contentShapes...)
		if err != nil {
			return "", errors.Track(errors.ErrEmptyContent).WithContext("item_id", itemID).Error()
		}
		text := parser.Normalize(raw)
		if text == "" {
			return "", errors.Track(errors.ErrEmptyContent).WithContext("item_id", itemID).Error()
		}
		return text, nil
	})
	if err != nil {
		return "", errors.Track(err).WithContext("item_id", itemID).Error()
	}
	return text, nil
}

// BulkContent fetches every chapter the provider will deliver for a book in a
// single request. Entries whose normalized text is empty are left out.
func (c *Client) BulkContent(ctx context.Context, bookID string) (map[string]string, error) {
	params := url.Values{"book_id": {bookID}, "tab": {tabBulk}}

	contents, err := network.Try(ctx, c.fallback, func(ctx context.Context, base string) (map[string]string, error) {
		data, err := c.fetch(ctx, base, contentPath, params)
		if err != nil {
			return nil, err
		}

		var payload struct {
			Lists json.RawMessage `json:"lists"`
		}
		if isObject(data) {
			_ = json.Unmarshal(data, &payload)
		}
		lists, _ := asArray(payload.Lists)

		contents := make(map[string]string, len(lists))
		for _, raw := range lists {
			var rec struct {
				ItemID  optString `json:"item_id"`
				Content optString `json:"content"`
			}
			if !isObject(raw) || json.Unmarshal(raw, &rec) != nil || !rec.ItemID.Set || !rec.Content.Set {
				continue
			}
			if text := parser.Normalize(rec.Content.Value); text != "" {
				contents[rec.ItemID.Value] = text
			}
		}

		if len(contents) == 0 {
			return nil, errors.Track(errors.ErrBulkUnavailable).WithContext("book_id", bookID).Error()
		}
		return contents, nil
	})
	if err != nil {
		return nil, errors.Track(err).WithContext("book_id", bookID).Error()
	}
	return contents, nil
}

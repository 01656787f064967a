package rewrite

// Test Plan for rewrite:
// - PrepareComponentCode rewrites all four fields of a multi-line decorator
// - Lines outside the four fields are byte-identical after rewriting
// - Only the first occurrence of each field is rewritten
// - Applying the same options twice is a no-op after the first application
// - The class declaration is replaced up to the opening brace
// - Missing fields are reported via *MissingFieldsError and errors.Is
// - Partial rewrites are still returned when fields are missing
// - A single-line decorator is consumed greedily by the selector field
// - ClassSuffix overrides the default Component suffix
// - Parse extracts values and reports missing fields

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const oldComponent = `import { Component } from '@angular/core';

@Component({
  selector: 'old',
  templateUrl: 'old.html',
  styleUrls: ['old.scss'],
})
export class Old {
  title = 'old, but gold';
}
`

var newNameOptions = Options{
	Selector:    "new-name",
	TemplateURL: "./new-name.component.html",
	StyleURL:    "./new-name.component.scss",
	ClassName:   "NewName",
}

func TestPrepareComponentCode_RewritesAllFields(t *testing.T) {
	t.Parallel()

	got, err := PrepareComponentCode(oldComponent, newNameOptions)
	require.NoError(t, err)

	want := `import { Component } from '@angular/core';

@Component({
  selector: 'new-name',
  templateUrl: './new-name.component.html',
  styleUrls: ['./new-name.component.scss'],
})
export class NewNameComponent {
  title = 'old, but gold';
}
`
	assert.Equal(t, want, got)
}

func TestPrepareComponentCode_UnrelatedLinesUnchanged(t *testing.T) {
	t.Parallel()

	got, err := PrepareComponentCode(oldComponent, newNameOptions)
	require.NoError(t, err)

	before := strings.Split(oldComponent, "\n")
	after := strings.Split(got, "\n")
	require.Len(t, after, len(before))

	rewritten := map[int]bool{3: true, 4: true, 5: true, 7: true}
	for i := range before {
		if rewritten[i] {
			assert.NotEqual(t, before[i], after[i], "line %d should be rewritten", i+1)
			continue
		}
		assert.Equal(t, before[i], after[i], "line %d should be untouched", i+1)
	}
}

func TestPrepareComponentCode_FirstMatchOnly(t *testing.T) {
	t.Parallel()

	src := oldComponent + `
@Component({
  selector: 'second',
  templateUrl: 'second.html',
  styleUrls: ['second.scss'],
})
export class Second {
}
`
	got, err := PrepareComponentCode(src, newNameOptions)
	require.NoError(t, err)

	assert.Contains(t, got, "selector: 'second',")
	assert.Contains(t, got, "templateUrl: 'second.html',")
	assert.Contains(t, got, "styleUrls: ['second.scss'],")
	assert.Contains(t, got, "export class Second {")
	assert.Equal(t, 1, strings.Count(got, "selector: 'new-name',"))
	assert.Equal(t, 1, strings.Count(got, "export class NewNameComponent {"))
}

func TestPrepareComponentCode_Idempotent(t *testing.T) {
	t.Parallel()

	once, err := PrepareComponentCode(oldComponent, newNameOptions)
	require.NoError(t, err)

	twice, err := PrepareComponentCode(once, newNameOptions)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestPrepareComponentCode_ClassDeclarationReplacedToBrace(t *testing.T) {
	t.Parallel()

	src := strings.Replace(oldComponent, "export class Old {", "export class Old implements OnInit, OnDestroy {", 1)

	got, err := PrepareComponentCode(src, newNameOptions)
	require.NoError(t, err)

	// Test: everything between "export class" and "{" is replaced
	assert.Contains(t, got, "export class NewNameComponent {")
	assert.NotContains(t, got, "implements OnInit")
}

func TestPrepareComponentCode_MissingFields(t *testing.T) {
	t.Parallel()

	src := `@Component({
  selector: 'old',
  styleUrl: './old.scss',
  template: '<p>inline</p>',
})
export class Old {}
`
	got, err := PrepareComponentCode(src, newNameOptions)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFieldNotFound))

	var missing *MissingFieldsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []Field{FieldTemplateURL, FieldStyleURLs}, missing.Fields)
	assert.Equal(t, "metadata field not found: templateUrl, styleUrls", err.Error())

	// Test: fields that were found are still rewritten
	assert.Contains(t, got, "selector: 'new-name',")
	assert.Contains(t, got, "export class NewNameComponent {}")
	assert.Contains(t, got, "styleUrl: './old.scss',")
}

func TestPrepareComponentCode_EmptySource(t *testing.T) {
	t.Parallel()

	got, err := PrepareComponentCode("", newNameOptions)
	assert.Equal(t, "", got)

	var missing *MissingFieldsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, Fields, missing.Fields)
}

func TestPrepareComponentCode_SingleLineDecoratorIsGreedy(t *testing.T) {
	t.Parallel()

	src := "@Component({selector: 'a', templateUrl: 'a.html', styleUrls: ['a.scss'],})\nexport class A {}\n"

	got, err := PrepareComponentCode(src, newNameOptions)

	// Test: the selector pattern runs to the last comma on the line
	assert.Equal(t, "@Component({selector: 'new-name',})\nexport class NewNameComponent {}\n", got)

	var missing *MissingFieldsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []Field{FieldTemplateURL, FieldStyleURLs}, missing.Fields)
}

func TestPrepareComponentCode_CRLF(t *testing.T) {
	t.Parallel()

	src := strings.ReplaceAll(oldComponent, "\n", "\r\n")

	got, err := PrepareComponentCode(src, newNameOptions)
	require.NoError(t, err)

	assert.Contains(t, got, "  selector: 'new-name',\r\n")
	assert.Contains(t, got, "export class NewNameComponent {\r\n")
}

func TestPrepareComponentCode_ClassSuffix(t *testing.T) {
	t.Parallel()

	opts := newNameOptions
	opts.ClassSuffix = "Widget"

	got, err := PrepareComponentCode(oldComponent, opts)
	require.NoError(t, err)
	assert.Contains(t, got, "export class NewNameWidget {")
}

func TestDocument_Set(t *testing.T) {
	t.Parallel()

	doc := NewDocument(oldComponent)

	require.NoError(t, doc.Set(FieldSelector, "app-x"))
	assert.Contains(t, doc.String(), "selector: 'app-x',")

	err := NewDocument("no metadata here").Set(FieldTemplateURL, "x.html")
	assert.ErrorIs(t, err, ErrFieldNotFound)
	assert.Contains(t, err.Error(), "templateUrl")
}

func TestParse(t *testing.T) {
	t.Parallel()

	md := Parse(oldComponent)

	assert.Equal(t, "old", md.Selector)
	assert.Equal(t, "old.html", md.TemplateURL)
	assert.Equal(t, []string{"old.scss"}, md.StyleURLs)
	assert.Equal(t, "Old", md.ClassName)
	assert.Empty(t, md.Missing())

	match, ok := md.Match(FieldSelector)
	require.True(t, ok)
	assert.Equal(t, "selector: 'old',", match.Text)
	assert.Equal(t, oldComponent[match.Start:match.End], match.Text)
}

func TestParse_ValueShapes(t *testing.T) {
	t.Parallel()

	src := `@Component({
  selector: "app-root",
  templateUrl: ` + "`./app.component.html`" + `,
  styleUrls: ['./a.scss', "./b.scss"],
})
export class AppComponent implements OnInit {
`
	md := Parse(src)

	assert.Equal(t, "app-root", md.Selector)
	assert.Equal(t, "./app.component.html", md.TemplateURL)
	assert.Equal(t, []string{"./a.scss", "./b.scss"}, md.StyleURLs)
	assert.Equal(t, "AppComponent", md.ClassName)
}

func TestParse_Missing(t *testing.T) {
	t.Parallel()

	md := Parse("export class Plain {\n}\n")

	assert.False(t, md.Has(FieldSelector))
	assert.True(t, md.Has(FieldClass))
	assert.Equal(t, []Field{FieldSelector, FieldTemplateURL, FieldStyleURLs}, md.Missing())
	assert.Equal(t, "Plain", md.ClassName)
}

func TestField_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "selector", FieldSelector.String())
	assert.Equal(t, "templateUrl", FieldTemplateURL.String())
	assert.Equal(t, "styleUrls", FieldStyleURLs.String())
	assert.Equal(t, "class", FieldClass.String())
	assert.Equal(t, "unknown", Field(42).String())
}

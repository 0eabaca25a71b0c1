// Package directive recognizes the directives embedded in template text.
//
//	<include src="PATH" />            raw include
//	<include src="PAGE.gen.html" />   rendered include
//	<py src="PATH" />                 code include
//	<py>BODY</py>                     code block
//	<pre py>BODY</pre>                code block
//	<code py>BODY</code>              code block
//	#`EXPR`                           code snippet
//	//#`EXPR`                         code snippet
//
// Attribute syntax is whitespace-flexible: one or more spaces separate the
// tag name from src, and any amount of whitespace may surround "=" and
// precede "/>". A code block may close with any of </py>, </pre> or </code>.
// Text that does not match a form exactly is not a directive.
package directive

// Package markup converts a small markdown-like dialect to HTML.
//
// The conversion is an ordered list of [Rule]s applied to the whole
// document, each rule's output feeding the next:
//
//	paragraph      blank-line separated text        <p>text</p>
//	subheading     ## text ##                       <h2>text</h2>
//	heading        # text #                         <h1>text</h1>
//	italic         __text__                         <em>text</em>
//	bold           **text**                         <strong>text</strong>
//	image-classed  ![alt](url)<class>               <div class="img class" ...>
//	image          ![alt](url)                      <div class="img" ...>
//	link-same-tab  [text]=(url)                     <a href="url">text</a>
//	link           [text](url)                      <a href="url" target="_blank">text</a>
//	linebreak      \\                               <br/>
//	nbsp           <>                               &nbsp;
//
// Apart from the paragraph rule, patterns are written in a simplified
// notation (see [Compile]). Paragraphs are not started by text beginning
// with '!', '#' or '<', so headings, images and already converted HTML are
// left unwrapped and formatting twice does not nest paragraphs.
//
// The compiled rule table is immutable and safe for concurrent use.
package markup

// Package digest simulates Type IIS restriction digestion of a plasmid and
// matches the resulting fragments against a syntax graph, reporting which
// syntax parts the plasmid carries.
//
// A cut is described by the overhang it leaves and by the orientation of the
// recognition site that produced it. Orientation is relative to the
// reference strand, not to the 5'/3' end of the fragment, so a fragment and
// its reverse-complement mirror can be told apart. Only fragments cut by a
// forward site on the left and a reverse site on the right are in the
// canonical left-to-right orientation of a syntax part.
package digest

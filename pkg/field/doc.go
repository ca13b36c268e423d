// Package field implements the Field type: a triangular region of three
// portals with an interior-portal list, a splitter, and up to three
// child subfields. Its methods place links into a linkgraph.Graph
// (build_links/build_final_links) and annotate completed links with the
// fields they close and the links they depend on
// (assign_fields_to_links). The edge-placement policy itself
// (try_add_link) lives alongside it since it is the mechanism a Field
// uses to turn its geometry into graph edges.
package field

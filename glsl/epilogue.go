package glsl

import "github.com/soypat/tgsi2glsl/ir"

// emitSOCopies writes one copy per stream-output binding (spec §4.4):
// tfout<k> takes the bound component range of the source register, which
// is either the named output or the redirected clip-distance/clip-vertex
// temporary, resolved here once the declaration pass has named everything.
func (ds *dumpState) emitSOCopies() {
	for i := range ds.so {
		b := &ds.so[i]
		src := ""
		if s := ds.findOutput(b.Register); s != nil {
			switch s.Semantic {
			case ir.SemClipDist:
				b.FromTemp = true
				src = "clip_dist_temp[" + itoa((b.Register-s.Reg)%2) + "]"
			case ir.SemClipVertex:
				b.FromTemp = true
				ds.hasClipVertexSO = true
				src = "clipv_tmp"
			default:
				src = s.Name
			}
		} else {
			// Uncaptured register: fall back to the temp file so a
			// misconfigured table still produces legal output.
			b.FromTemp = true
			src = ds.tempExpr(b.Register)
		}
		ds.body.stmt(b.BufferName + " = " + vecN(b.NumComponents) + "(" + src + soSwizzle(b.StartComponent, b.NumComponents) + ");")
	}
}

func soSwizzle(start, n int) string {
	if start == 0 && n == 4 {
		return ""
	}
	s := "."
	for i := 0; i < n; i++ {
		s += string(swizChar[(start+i)&3])
	}
	return s
}

// emitClipDistPacking unpacks the two-vec4 clip_dist_temp into
// gl_ClipDistance followed by gl_CullDistance, indices monotonically
// 0..num_clip_dist_prop-1 then 0..num_cull_dist_prop-1 (spec §8).
func (ds *dumpState) emitClipDistPacking() {
	if !ds.clipDistTempUsed {
		return
	}
	nclip := ds.numClipDistProp
	if nclip == 0 && ds.numCullDistProp == 0 {
		nclip = clampInt(ds.numClipDist*4, 0, 8)
	}
	ncull := clampInt(ds.numCullDistProp, 0, 8-nclip)
	for i := 0; i < nclip; i++ {
		ds.body.stmt("gl_ClipDistance[" + itoa(i) + "] = clip_dist_temp[" + itoa(i/4) + "][" + itoa(i%4) + "];")
	}
	for j := 0; j < ncull; j++ {
		lane := nclip + j
		ds.body.stmt("gl_CullDistance[" + itoa(j) + "] = clip_dist_temp[" + itoa(lane/4) + "][" + itoa(lane%4) + "];")
	}
}

func (ds *dumpState) emitClipVertexPlanes() {
	if !ds.clipVertexTempUsed {
		return
	}
	for i := 0; i < 8; i++ {
		if ds.key.ClipPlaneMask&(1<<uint(i)) == 0 {
			continue
		}
		ds.body.stmt("gl_ClipDistance[" + itoa(i) + "] = dot(clipv_tmp, clipp[" + itoa(i) + "]);")
	}
}

func (ds *dumpState) emitYPrescale() {
	ds.body.stmt("gl_Position.y = gl_Position.y * winsys_adjust_y;")
}

// emitVertexEpilogue implements the vertex-stage exit sequence (spec §4.4):
// stream-output copies when no geometry stage will re-emit them, clip
// distance packing from the redirected temporaries, then the Y-flip
// prescale for the window-system coordinate convention.
func (ds *dumpState) emitVertexEpilogue() {
	if len(ds.so) > 0 && !ds.key.HasGeometryStage {
		ds.emitSOCopies()
	}
	ds.emitClipDistPacking()
	ds.emitClipVertexPlanes()
	ds.emitYPrescale()
}

// emitFragmentEpilogue implements the fragment-stage exit sequence (spec
// §4.4), in order: polygon-stipple discard, A8 swizzle, alpha test,
// color broadcast when write_all_cbufs is set.
func (ds *dumpState) emitFragmentEpilogue() {
	if ds.key.PolygonStipple {
		ds.body.stmt("if (texture(pstipple_sampler, vec2(gl_FragCoord.x / 32.0, gl_FragCoord.y / 32.0)).x == 0.0) discard;")
	}

	var color *IOSlot
	for i := range ds.outputs {
		if ds.outputs[i].Semantic == ir.SemColor {
			color = &ds.outputs[i]
			break
		}
	}

	if color != nil {
		for i := range ds.outputs {
			s := &ds.outputs[i]
			if s.Semantic == ir.SemColor && ds.key.ColorBufferA8Mask&(1<<uint(s.Index)) != 0 {
				ds.body.stmt(s.Name + ".x = " + s.Name + ".w;")
			}
		}
	}

	if ds.key.AlphaTest && color != nil {
		var cond string
		switch ds.key.AlphaTestFunc {
		case AlphaNever:
			cond = "false"
		case AlphaAlways:
			cond = "true"
		default:
			cond = color.Name + ".w " + ds.key.AlphaTestFunc.glslOp() + " " + ftoa(ds.key.AlphaRefValue)
		}
		ds.body.stmt("if (!(" + cond + ")) { discard; }")
	}

	if ds.writeAllCBufs && color != nil {
		for i := 1; i < 8; i++ {
			ds.body.stmt("fsout_c" + itoa(i) + " = " + color.Name + ";")
		}
	}
}

// emitColorTwoSidePrologue implements the front/back color select: a
// two-sided fragment shader selects the front or back input based on
// gl_FrontFacing before the translated body runs (spec §4.1 INPUT,
// "two-sided"). Called once at the very start of the fragment main body.
func (ds *dumpState) emitColorTwoSidePrologue() {
	if ds.colorTwoSideEmitted {
		return
	}
	for i := range ds.inputs {
		s := &ds.inputs[i]
		if s.Semantic != ir.SemColor || ds.twoSideColorMask&(1<<uint(s.Index)) == 0 {
			continue
		}
		backName := "ex_bc" + itoa(s.Index)
		ds.body.stmt("realcolor" + itoa(s.Index) + " = gl_FrontFacing ? " + s.Name + " : " + backName + ";")
	}
	ds.colorTwoSideEmitted = true
}

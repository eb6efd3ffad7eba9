package glsl

import "github.com/soypat/tgsi2glsl/ir"

// property applies one Property record (spec §4.2): a pure state mutation,
// never a failure.
func (ds *dumpState) property(p ir.Property) bool {
	switch p.Name {
	case ir.PropWriteAllCBufs:
		ds.writeAllCBufs = p.Value != 0
	case ir.PropFSCoordOrigin:
		ds.fsCoordOrigin = p.Value
		ds.fsCoordConvSet = true
	case ir.PropFSCoordPixelCenter:
		ds.fsPixelCenter = p.Value
		ds.fsCoordConvSet = true
	case ir.PropGSInputPrim:
		ds.gsInPrim = p.Value
	case ir.PropGSOutputPrim:
		ds.gsOutPrim = p.Value
	case ir.PropGSMaxOutputVertices:
		ds.gsMaxOutVerts = p.Value
	case ir.PropGSInvocations:
		ds.gsInvocations = p.Value
		if p.Value > 1 {
			ds.usesGPUShader5 = true
		}
	case ir.PropNumClipDist:
		ds.numClipDistProp = p.Value
	case ir.PropNumCullDist:
		ds.numCullDistProp = p.Value
	case ir.PropEarlyDepthStencil:
		ds.earlyDepthStencil = p.Value != 0
	case ir.PropCSBlockWidth:
		ds.csBlockSize[0] = p.Value
	case ir.PropCSBlockHeight:
		ds.csBlockSize[1] = p.Value
	case ir.PropCSBlockDepth:
		ds.csBlockSize[2] = p.Value
	}
	return true
}

// immediate appends an IR immediate to the immediate vector (spec §4.2);
// a non-float immediate raises has_ints.
func (ds *dumpState) immediate(im ir.Immediate) bool {
	if len(ds.immediates) >= maxImmediates {
		return ds.fail(errCapacity("immediate", "too many immediates"))
	}
	if im.Type != ir.ImmFloat32 {
		ds.hasInts = true
	}
	ds.immediates = append(ds.immediates, im)
	return true
}

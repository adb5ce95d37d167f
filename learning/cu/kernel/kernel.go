// Package kernel carries the compiled PTX of the device salt sweep.
// Each thread takes one candidate salt, hashes both alphabets modulo
// max into its private marker set, and publishes the first salt whose
// residues stay collision free across classes.
package kernel

// PTXSweepCUDA is the sweep kernel, compiled from sweep.cu for sm_52.
const PTXSweepCUDA = `
//
// Generated by NVIDIA NVVM Compiler
//
// Compiler Build ID: CL-33191640
// Cuda compilation tools, release 12.2, V12.2.140
// Based on NVVM 7.0.1
//

.version 8.2
.target sm_52
.address_size 64

	// .globl	sweep

.visible .entry sweep(
	.param .u64 sweep_param_0,
	.param .u64 sweep_param_1,
	.param .u64 sweep_param_2,
	.param .u64 sweep_param_3
)
{
	.reg .pred 	%p<12>;
	.reg .b16 	%rs<6>;
	.reg .b32 	%r<58>;
	.reg .b64 	%rd<30>;


	ld.param.u64 	%rd10, [sweep_param_0];
	ld.param.u64 	%rd11, [sweep_param_1];
	ld.param.u64 	%rd12, [sweep_param_2];
	ld.param.u64 	%rd13, [sweep_param_3];
	cvta.to.global.u64 	%rd1, %rd13;
	cvta.to.global.u64 	%rd2, %rd12;
	cvta.to.global.u64 	%rd3, %rd11;
	cvta.to.global.u64 	%rd4, %rd10;
	mov.u32 	%r14, %ntid.x;
	mov.u32 	%r15, %ctaid.x;
	mov.u32 	%r16, %tid.x;
	mad.lo.s32 	%r17, %r15, %r14, %r16;
	mov.u32 	%r18, %ctaid.y;
	mov.u32 	%r19, %nctaid.x;
	mad.lo.s32 	%r1, %r18, %r19, %r17;
	ld.global.u32 	%r2, [%rd3];
	ld.global.u32 	%r3, [%rd3+4];
	ld.global.u32 	%r20, [%rd3+12];
	setp.ge.u32 	%p1, %r1, %r20;
	@%p1 bra 	$L__BB0_9;

	ld.global.u32 	%r21, [%rd3+20];
	add.s32 	%r4, %r21, %r1;
	add.s32 	%r22, %r2, 3;
	shr.u32 	%r23, %r22, 2;
	add.s32 	%r5, %r23, 4;
	mul.lo.s32 	%r24, %r5, %r1;
	cvt.u64.u32 	%rd14, %r24;
	add.s64 	%rd5, %rd4, %rd14;
	ld.global.u32 	%r25, [%rd3+16];
	add.s32 	%r6, %r25, 1;
	shl.b32 	%r26, %r3, 1;
	mov.u32 	%r54, 0;

$L__BB0_2:
	setp.ge.u32 	%p2, %r54, %r26;
	@%p2 bra 	$L__BB0_8;

	shl.b32 	%r28, %r54, 2;
	cvt.u64.u32 	%rd15, %r28;
	add.s64 	%rd16, %rd2, %rd15;
	ld.global.u32 	%r7, [%rd16];
	sub.s32 	%r29, %r7, %r4;
	mul.lo.s32 	%r30, %r29, 2654435761;
	shr.u32 	%r31, %r30, 13;
	xor.b32 	%r32, %r30, %r31;
	shl.b32 	%r33, %r32, 17;
	xor.b32 	%r34, %r32, %r33;
	shr.u32 	%r35, %r34, 5;
	xor.b32 	%r36, %r34, %r35;
	add.s32 	%r37, %r36, %r4;
	mul.wide.u32 	%rd17, %r37, %r2;
	shr.u64 	%rd18, %rd17, 32;
	cvt.u32.u64 	%r8, %rd18;
	shr.u32 	%r38, %r8, 2;
	cvt.u64.u32 	%rd19, %r38;
	add.s64 	%rd20, %rd5, %rd19;
	and.b32 	%r39, %r8, 3;
	shl.b32 	%r40, %r39, 1;
	setp.lt.u32 	%p3, %r54, %r3;
	selp.b32 	%r41, 1, 2, %p3;
	shl.b32 	%r42, %r41, %r40;
	cvt.u16.u32 	%rs1, %r42;
	ld.global.u8 	%rs2, [%rd20];
	cvt.u32.u16 	%r43, %rs2;
	shr.u32 	%r44, %r43, %r40;
	and.b32 	%r45, %r44, 3;
	setp.eq.s32 	%p4, %r45, 0;
	@%p4 bra 	$L__BB0_6;

	cvt.u32.u16 	%r46, %rs1;
	shr.u32 	%r47, %r46, %r40;
	and.b32 	%r48, %r47, 3;
	setp.eq.s32 	%p5, %r45, %r48;
	@%p5 bra 	$L__BB0_7;
	bra.uni 	$L__BB0_5;

$L__BB0_5:
	// cross-class residue collision, abandon this salt
	bra.uni 	$L__BB0_9;

$L__BB0_6:
	or.b16 	%rs3, %rs2, %rs1;
	st.global.u8 	[%rd20], %rs3;

$L__BB0_7:
	// low bit must carry the class once both sets are marked
	and.b32 	%r49, %r8, 1;
	setp.lt.u32 	%p6, %r54, %r3;
	selp.b32 	%r50, 0, 1, %p6;
	setp.ne.s32 	%p7, %r49, %r50;
	@%p7 bra 	$L__BB0_9;

$L__BB0_8:
	add.s32 	%r54, %r54, 1;
	setp.lt.u32 	%p8, %r54, %r26;
	@%p8 bra 	$L__BB0_2;

	// all residues disjoint and parity aligned, publish the salt
	mov.u32 	%r51, 1;
	atom.global.cas.b32 	%r52, [%rd1+4], 0, %r51;
	setp.ne.s32 	%p9, %r52, 0;
	@%p9 bra 	$L__BB0_9;

	st.global.u32 	[%rd1], %r4;

$L__BB0_9:
	ret;

}
`
